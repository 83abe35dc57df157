package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 哨兵值：旧版前端直接展示这两个字符串，仅允许出现在 DTO 序列化层
const (
	SentinelUngraded = "待批改" // 已提交、未批改的提交
	SentinelNotDone  = "未完成" // 学生尚未提交/未得分的作业
)

// MaxUploadBytes 上传文件大小上限，超过（不含等于）拒绝，且必须在请求任何上传地址之前校验
const MaxUploadBytes = 20 << 20

// 文件类型相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)
