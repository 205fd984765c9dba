package models

import "time"

// Submission represents one student submission for an assignment.
// The engine never mutates submission content; it only attaches a
// plagiarism result to the record on persist.
type Submission struct {
	ID           string     `bson:"_id" json:"id"`
	AssignmentID string     `bson:"assignmentId" json:"assignmentId"`
	StudentID    string     `bson:"studentId" json:"studentId"`
	StudentName  string     `bson:"studentName" json:"studentName"`
	Content      string     `bson:"content" json:"content"`
	SubmittedAt  time.Time  `bson:"submittedAt" json:"submittedAt"`
	DeletedAt    *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	PlagiarismResult *PlagiarismResult `bson:"plagiarismResult,omitempty" json:"plagiarismResult,omitempty"`
}
