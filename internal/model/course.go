package model

import "time"

type CourseType string

const (
	CourseTypeLive     CourseType = "live"
	CourseTypeRecorded CourseType = "recorded"
)

type Course struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Type      CourseType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LectureRef is one lecture in content order, as produced by the content
// provider after normalizing the stored module/lecture rows.
type LectureRef struct {
	LectureID    int64  `json:"lecture_id"`
	ModuleOrder  int    `json:"module_order"`
	ModuleTitle  string `json:"module_title"`
	LectureOrder int    `json:"lecture_order"`
	Title        string `json:"title"`
	IsDemo       bool   `json:"is_demo"`
	IsAccessible bool   `json:"is_accessible"` // authoring override, opens the lecture early
	Placeholder  bool   `json:"placeholder,omitempty"`
}
