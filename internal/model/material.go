package model

type MaterialType string

const (
	MaterialPDF      MaterialType = "pdf"
	MaterialPPT      MaterialType = "ppt"
	MaterialVideo    MaterialType = "video"
	MaterialNotebook MaterialType = "notebook"
	MaterialOther    MaterialType = "other"
)

// Material 课程资料（课件、视频等），挂在教学周下
// swagger:model Material
type Material struct {
	BaseModel
	CourseID     uint         `gorm:"index" json:"courseId"`
	CourseWeekID uint         `gorm:"index" json:"courseWeekId"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Type         MaterialType `gorm:"size:20;not null" json:"type"`
	FileKey      string       `gorm:"size:255;not null" json:"fileKey"`
	Size         int64        `gorm:"default:0" json:"size"`
	UploaderID   uint         `gorm:"index" json:"uploaderId"`
	ViewCount    int          `gorm:"column:view_count;default:0" json:"viewCount"`
	Duration     float64      `gorm:"default:0" json:"duration"` // 视频时长（秒）
	Format       string       `gorm:"size:50" json:"format"`
	Thumbnail    string       `gorm:"size:255" json:"thumbnail"`
}

func (Material) TableName() string {
	return "materials"
}
