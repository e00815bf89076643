package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"assetVerse/internal/models"
	"assetVerse/internal/services"
	"assetVerse/utils"

	"github.com/google/uuid"
)

type AssetHandler struct {
	Service *services.AssetService
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateAsset(r.Context(), principalEmail(r), asset)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrHRNotFound), errors.Is(err, models.ErrUserNotFound):
			http.Error(w, "Hr not found", http.StatusBadRequest)
		case errors.Is(err, services.ErrInvalidAsset):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetAssets lists assets newest-first. With ?email= the listing is scoped to
// that HR's assets and the email must match the authenticated principal.
// Supports ?search=, ?limit= and ?skip=.
func (h *AssetHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	hrEmail := r.URL.Query().Get("email")
	if hrEmail != "" && hrEmail != principalEmail(r) {
		http.Error(w, "Unauthorized accessed", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	assets, total, err := h.Service.GetAssetsFiltered(r.Context(), models.AssetFilter{
		HREmail: hrEmail,
		Search:  r.URL.Query().Get("search"),
		Limit:   limit,
		Offset:  skip,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":  assets,
		"total": total,
	})
}

func (h *AssetHandler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing asset ID", http.StatusBadRequest)
		return
	}

	asset, err := h.Service.GetAssetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(asset)
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing asset ID", http.StatusBadRequest)
		return
	}

	var asset models.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	asset.ID = id
	asset.HREmail = principalEmail(r)

	updated, err := h.Service.UpdateAsset(r.Context(), asset)
	if err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Restock raises available stock, bounded by the asset's initial quantity.
func (h *AssetHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing asset ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	asset, err := h.Service.Restock(r.Context(), id, principalEmail(r), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAssetNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrQuantityExceeded), errors.Is(err, services.ErrInvalidAsset):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(asset)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing asset ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteAsset(r.Context(), id, principalEmail(r)); err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

const maxUploadSize = 10 << 20 // 10 MiB

// UploadAssetImage stores a product image in object storage and returns its
// public URL for use in a subsequent asset create/update.
func (h *AssetHandler) UploadAssetImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), filepath.Ext(header.Filename))
	imageURL, err := utils.UploadFileToS3(data, fileName, "assets")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": imageURL})
}
