package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Document upload limits for question extraction.
const (
	MimeText          = "text/plain"
	MaxUploadBytes    = 10 << 20 // 10MB
	MinExtractedChars = 50
)

// AvailableTopics is the controlled vocabulary an assignment's topic must
// come from. It mirrors the seeded misconception catalog.
var AvailableTopics = []string{
	"fractions",
	"algebra",
	"percentages",
	"forces",
	"energy",
	"electricity",
	"grammar",
	"general",
}

func IsValidTopic(topic string) bool {
	for _, t := range AvailableTopics {
		if t == topic {
			return true
		}
	}
	return false
}
