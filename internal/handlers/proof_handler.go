package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"settlement-service/internal/services"
	"settlement-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadProof handles POST /requests/:id/proofs/:role (multipart).
func (h *Handlers) UploadProof(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	role := c.Param("role")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	mediaType := file.Header.Get("Content-Type")
	if errRes := services.ValidateArtifact(mediaType, file.Size); errRes != nil {
		respond(c, *errRes)
		return
	}

	storageRef, err := h.saveProofFile(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	res, err := h.Proofs.Attach(services.AttachProofDTO{
		RequestId:  id,
		AdminId:    admin,
		Role:       role,
		StorageRef: storageRef,
		MediaType:  mediaType,
		SizeBytes:  file.Size,
	})
	if err != nil {
		os.Remove(filepath.Join(h.UploadDir, storageRef))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if errRes, isErr := res.(common.ErrorResponse); isErr {
		os.Remove(filepath.Join(h.UploadDir, storageRef))
		respond(c, errRes)
		return
	}
	respond(c, res)
}

// saveProofFile stores the upload under a uuid filename and returns the
// storage reference.
func (h *Handlers) saveProofFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if _, err := os.Stat(h.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
			return "", err
		}
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(h.UploadDir, newFilename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		return "", err
	}
	return newFilename, nil
}
