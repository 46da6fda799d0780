package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type SubjectStatInput struct {
	Name      string
	Questions int
	Accuracy  float64
}

type LocationStatInput struct {
	Name      string
	Questions int
	QPM       float64
}

type SnapshotInput struct {
	Streak         int
	HasHistory     bool
	GlobalAccuracy float64
	GlobalQPM      float64
	Subjects       []SubjectStatInput
	Locations      []LocationStatInput
}

type InsightOutput struct {
	Plugin   string
	Category string
	Message  string
}
