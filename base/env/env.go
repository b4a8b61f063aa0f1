package env

import (
	"os"
)

// PodName is the kubernetes pod running the service, e.g. ensapi-7d9f6c-x2kqz
func PodName() string {
	return os.Getenv("PODNAME")
}
