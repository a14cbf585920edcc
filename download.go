package multibranch

import (
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"gitlab.com/tozd/go/errors"
)

// downloadFile downloads a file from url URL.
func downloadFile(url string) ([]byte, errors.E) {
	client := retryablehttp.NewClient()
	client.Logger = nil

	response, err := client.Get(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		errE := errors.New("unexpected response status")
		errors.Details(errE)["url"] = url
		errors.Details(errE)["status"] = response.Status
		return nil, errE
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}
