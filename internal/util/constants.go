package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 测验与进度策略
const (
	// RetryScoreCap 非首次提交的调整分上限
	RetryScoreCap = 85
	// PointsPerDecile 每 10 个百分点奖励的积分
	PointsPerDecile = 10
	// DefaultTotalTopics 模块未配置主题数时的种子默认值
	DefaultTotalTopics = 6
	// ProgressMaxRetries 进度文档乐观锁冲突的最大重试次数
	ProgressMaxRetries = 3
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)
