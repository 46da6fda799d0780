package dto

type SubjectOutput struct {
	Name      string
	ExamTypes []string
	Topics    []string
}

type TopicHitOutput struct {
	ExamType string
	Subject  string
	Topic    string
}
