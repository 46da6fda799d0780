package dto

type InsightOutput struct {
	Category string
	Message  string
}
