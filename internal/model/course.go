package model

type Course struct {
	BaseModel
	Code    string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Program string `gorm:"size:255;index" json:"program"`
	Term    string `gorm:"size:50" json:"term,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
