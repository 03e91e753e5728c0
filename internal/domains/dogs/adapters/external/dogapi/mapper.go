package dogapi

import (
	"strings"

	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
)

// ToDogPhoto converts the remote payload into the domain photo.
func ToDogPhoto(resp *dogapiclient.RandomImageResponse) *domain.DogPhoto {
	if resp == nil {
		return nil
	}
	return &domain.DogPhoto{
		Message: strings.TrimSpace(resp.Message),
		Status:  resp.Status,
	}
}
