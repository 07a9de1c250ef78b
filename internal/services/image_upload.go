package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImgurResponse is the subset of the Imgur API response we read.
type ImgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

type ImageUploadResult struct {
	URL         string `json:"url"`
	OriginalURL string `json:"original_url"`
	ID          string `json:"id"`
}

// UploadToImgur uploads a question/answer attachment to Imgur.
func UploadToImgur(clientID string, file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	if err := writer.WriteField("image", base64Image); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequest("POST", "https://api.imgur.com/3/image", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Client-ID "+clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var imgurResp ImgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !imgurResp.Success {
		return nil, fmt.Errorf("imgur upload failed: status %d", imgurResp.Status)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		switch imgurResp.Data.Type {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}

	return &ImageUploadResult{
		URL:         fmt.Sprintf("/img/%s%s", imgurResp.Data.ID, ext),
		OriginalURL: imgurResp.Data.Link,
		ID:          imgurResp.Data.ID,
	}, nil
}

// UploadToDisk stores an attachment under ./uploads with a random name.
// Used when no Imgur client id is configured.
func UploadToDisk(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	if err := os.MkdirAll("uploads", 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	dst, err := os.Create(filepath.Join("uploads", name))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &ImageUploadResult{
		URL: "/uploads/" + name,
		ID:  strings.TrimSuffix(name, ext),
	}, nil
}

// UploadImage picks the configured backend.
func UploadImage(clientID string, file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	if clientID != "" {
		return UploadToImgur(clientID, file, header)
	}
	return UploadToDisk(file, header)
}
