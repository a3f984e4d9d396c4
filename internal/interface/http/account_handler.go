package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/courseware-labs/account-service/internal/application"
	"github.com/courseware-labs/account-service/internal/storage"
	"github.com/courseware-labs/account-service/pkg/helpers"
	"github.com/courseware-labs/account-service/pkg/response"
	"github.com/courseware-labs/account-service/pkg/validation"
)

// Status messages surfaced through the single-slot flash channel. These are
// the only user-visible outcome strings for account mutations.
const (
	MsgBasicUpdated  = "Updated basic information successfully."
	MsgBasicFailed   = "Unable to save basic information."
	MsgAddressOK     = "Updated address information successfully."
	MsgAddressFailed = "Unable to save address information."
	MsgImageFailed   = "Unable to upload profile image,"
)

type AccountHandler struct {
	Profile *application.ProfileService
	Images  *application.ImageService
	Store   storage.ObjectStore
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewAccountHandler(profile *application.ProfileService, images *application.ImageService, store storage.ObjectStore, rdb *redis.Client, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Profile: profile, Images: images, Store: store, Redis: rdb, Logger: logger}
}

// Details renders the account page model plus any pending status message.
func (h *AccountHandler) Details(c *gin.Context) {
	uid := c.GetString("userID")
	view, err := h.Profile.ReadProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load profile", nil)
		return
	}

	meta := map[string]any{}
	if msg := helpers.FlashTake(c.Request.Context(), h.Redis, uid); msg != "" {
		meta["status_message"] = msg
	}
	if view.ProfileImage != "" && h.Store != nil {
		meta["profile_image_url"] = h.Store.URL(view.ProfileImage)
	}
	response.Success(c, http.StatusOK, view, "account details", meta)
}

// UpdateBasicInfo applies the basic-info form. The flash message is generic
// per outcome; field-level reasons ride only in the JSON error body.
func (h *AccountHandler) UpdateBasicInfo(c *gin.Context) {
	uid := c.GetString("userID")
	var in application.BasicInfoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgBasicFailed)
		response.Error[any](c, http.StatusBadRequest, MsgBasicFailed, validation.ToDetails(err))
		return
	}

	res := h.Profile.UpdateBasicInfo(c.Request.Context(), uid, in)
	if !res.OK() {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgBasicFailed)
		response.Error[any](c, statusFor(res.Outcome), MsgBasicFailed, res.Fields)
		return
	}
	helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgBasicUpdated)
	response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, MsgBasicUpdated, nil)
}

// UpdateAddress applies the address form, creating or mutating the single
// owned address.
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	uid := c.GetString("userID")
	var in application.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgAddressFailed)
		response.Error[any](c, http.StatusBadRequest, MsgAddressFailed, validation.ToDetails(err))
		return
	}

	res := h.Profile.UpdateAddress(c.Request.Context(), uid, in)
	if !res.OK() {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgAddressFailed)
		response.Error[any](c, statusFor(res.Outcome), MsgAddressFailed, res.Fields)
		return
	}
	helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgAddressOK)
	response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, MsgAddressOK, nil)
}

// UploadImage accepts a multipart profile image and swaps the user's image
// reference. Missing or empty files are skipped, never partially written.
func (h *AccountHandler) UploadImage(c *gin.Context) {
	uid := c.GetString("userID")

	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgImageFailed)
		response.Error[any](c, http.StatusBadRequest, MsgImageFailed, nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgImageFailed)
		response.Error[any](c, http.StatusBadRequest, MsgImageFailed, nil)
		return
	}
	defer func() { _ = f.Close() }()

	key, res := h.Images.UploadProfileImage(c.Request.Context(), uid, f, fh.Size, fh.Filename)
	if !res.OK() {
		helpers.FlashSet(c.Request.Context(), h.Redis, uid, MsgImageFailed)
		response.Error[any](c, statusFor(res.Outcome), MsgImageFailed, nil)
		return
	}
	data := map[string]any{"profile_image": key}
	if h.Store != nil {
		data["profile_image_url"] = h.Store.URL(key)
	}
	response.Success[any](c, http.StatusOK, data, "profile image updated", nil)
}

func statusFor(o application.Outcome) int {
	switch o {
	case application.OutcomeValidationFailed, application.OutcomeSkipped:
		return http.StatusBadRequest
	case application.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
