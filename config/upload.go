package config

// UploadConfig limits what a given upload context accepts.
type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

const OrderAttachmentContext = "order_attachment"

var UploadContexts = map[string]UploadConfig{
	OrderAttachmentContext: {
		AllowedMimeTypes: []string{
			"image/jpeg", "image/png", "image/webp", "application/pdf",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/zip",
		},
		MaxSizeMB:  20,
		PathPrefix: "orders",
	},
}
