package config

// Драйверы хранилища изображений.
const (
	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"
)

// multipartOverhead - запас на поля формы сверх максимального размера файла.
const multipartOverhead = 1 << 20

// UploadConfig содержит ограничения и хранилище загружаемых файлов.
type UploadConfig struct {
	MaxFileSize int64  `yaml:"max_file_size" env:"CMS_UPLOAD_MAX_FILE_SIZE" env-default:"50000000"`
	Driver      string `yaml:"driver" env:"CMS_UPLOAD_DRIVER" env-default:"local"`
	Dir         string `yaml:"dir" env:"CMS_UPLOAD_DIR" env-default:"media"`
	PublicPath  string `yaml:"public_path" env:"CMS_UPLOAD_PUBLIC_PATH" env-default:"/media"`
	S3Bucket    string `yaml:"s3_bucket" env:"CMS_UPLOAD_S3_BUCKET"`
	S3Region    string `yaml:"s3_region" env:"CMS_UPLOAD_S3_REGION" env-default:"eu-west-3"`
	S3Prefix    string `yaml:"s3_prefix" env:"CMS_UPLOAD_S3_PREFIX" env-default:"app-users"`
}

// BodyLimit возвращает предельный размер тела запроса для HTTP сервера.
// Лимит больше размера файла, чтобы обработчик сам вернул сообщение о превышении.
func (u *UploadConfig) BodyLimit() int {
	return int(u.MaxFileSize) + multipartOverhead
}
