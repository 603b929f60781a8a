package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCSV = "text/csv"
)

// 机器人可渲染的选项数量范围（Telegram poll 限制）
const (
	MinPollOptions = 2
	MaxPollOptions = 10
)

const MinPasswordLength = 8
