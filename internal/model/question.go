package model

// Question is a question asked by one user and directed at one expert.
//
// LIFECYCLE:
// A question starts unanswered (answer_text is NULL in the database) and
// becomes answered when the expert submits text. There is no further
// transition — answered is terminal.
//
// Answer/Answered mirror the nullable column: the repository scans
// answer_text into a sql.NullString and exposes it here as a plain string
// plus a validity flag, which is friendlier for templates than a pointer.
//
// AskedBy and Expert carry the joined user names for display. They are
// populated by the list/get queries, not stored on the questions table.
type Question struct {
	ID        int64  `json:"id"`
	Text      string `json:"question_text"`
	Answer    string `json:"answer_text,omitempty"`
	Answered  bool   `json:"answered"`
	AskedByID int64  `json:"asked_by_id"`
	ExpertID  int64  `json:"expert_id"`
	AskedBy   string `json:"asked_by,omitempty"`
	Expert    string `json:"expert,omitempty"`
}
