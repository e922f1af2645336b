package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MaxUploadBytes is the upload size ceiling. The product limit is "under 3
// minutes" of video; the server enforces the duration, this ceiling keeps
// obviously oversized files from ever leaving the machine.
const MaxUploadBytes = 180 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported video format")
	ErrVideoTooLarge     = errors.New("video exceeds the upload size limit")
)

// allowedExtensions is the container allow-list, matching what the server
// side will accept.
var allowedExtensions = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".ogg":  {},
	".mkv":  {},
	".mov":  {},
	".avi":  {},
	".wmv":  {},
}

type uploadResponse struct {
	ID string `json:"id"`
}

// Upload validates and uploads the video file at path, returning the session
// id assigned by the server. Validation failures are rejected locally before
// any network call.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	ctx, span := tracer.Start(ctx, "upload video")
	defer span.End()
	span.SetAttributes(attribute.String("request.file", filepath.Base(path)))

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedExtensions[ext]; !ok {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open video file: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("failed to stat video file: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int64("request.file_size", info.Size()))
	if info.Size() > MaxUploadBytes {
		err := fmt.Errorf("%w: %d bytes", ErrVideoTooLarge, info.Size())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	bodyReader, bodyWriter := io.Pipe()
	form := multipart.NewWriter(bodyWriter)

	go func() {
		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(path)))
		if contentType := mime.TypeByExtension(ext); contentType != "" {
			partHeader.Set("Content-Type", contentType)
		}

		part, err := form.CreatePart(partHeader)
		if err != nil {
			bodyWriter.CloseWithError(fmt.Errorf("failed to create multipart section: %w", err))
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			bodyWriter.CloseWithError(fmt.Errorf("failed to stream video file: %w", err))
			return
		}
		bodyWriter.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/upload", bodyReader)
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("error reading response body: %w", err)
		span.RecordError(err)
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		err := errors.New(requestFailure(body, "Upload failed"))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		err = fmt.Errorf("error unmarshalling JSON: %w", err)
		span.RecordError(err)
		return "", err
	}
	if parsed.ID == "" {
		err := errors.New("upload response carried no video id")
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.String("response.video_id", parsed.ID))
	return parsed.ID, nil
}
