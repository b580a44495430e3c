// Package news serves the announcement banner items on the customer page.
package news

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"eltablero/models"
	"eltablero/store"
	"eltablero/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const (
	newsUploadDir = "./static/newspic"
	thumbWidth    = 480
)

func GetNews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Collection filter keeps inactive items out; newest first.
	list, err := store.News.ReadAll(ctx, nil)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list news")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func CreateNews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	item := models.NewsItem{
		ID:        utils.GenID(),
		Title:     title,
		Text:      strings.TrimSpace(r.FormValue("text")),
		IsActive:  true,
		CreatedAt: time.Now().UnixMilli(),
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		imagePath, thumbPath, err := saveNewsImage(files[0], item.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
			return
		}
		item.ImagePath = imagePath
		item.ThumbPath = thumbPath
	}

	if err := store.News.Create(ctx, item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create news item")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func DeleteNews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.News.Delete(ctx, ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete news item")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func saveNewsImage(file *multipart.FileHeader, id string) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumbDir := filepath.Join(newsUploadDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := id + ".jpg"
	originalPath := filepath.Join(newsUploadDir, fileName)
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := imaging.Save(img, originalPath); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/newspic/" + fileName, "/newspic/thumb/" + fileName, nil
}
