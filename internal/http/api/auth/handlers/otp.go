package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linguo-app/linguo-auth/internal/otp"
	log "github.com/sirupsen/logrus"
)

// OTPHandler manages verification code endpoints.
type OTPHandler struct {
	otp      *otp.Service
	echoCode bool
}

// NewOTPHandler constructs an OTPHandler. When echoCode is set the generated
// code is returned in the send response, a dev-only posture.
func NewOTPHandler(svc *otp.Service, echoCode bool) *OTPHandler {
	return &OTPHandler{otp: svc, echoCode: echoCode}
}

// sendRequest defines the request body for sending a code.
type sendRequest struct {
	Contact string `json:"contact"`
}

// Send issues a fresh code for the contact, replacing any pending one.
func (h *OTPHandler) Send(c *gin.Context) {
	var body sendRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Contact details required"})
		return
	}
	contact := strings.TrimSpace(body.Contact)
	if contact == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Contact details required"})
		return
	}

	code, errIssue := h.otp.Issue(c.Request.Context(), contact)
	if errIssue != nil {
		log.WithError(errIssue).Error("issue otp failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
		return
	}

	log.Infof("otp issued for %s", contact)
	log.Debugf("otp code for %s: %s", contact, code)

	if h.echoCode {
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully (returned for dev)", "otp": code})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// verifyRequest defines the request body for verifying a code.
type verifyRequest struct {
	Contact string `json:"contact"`
	OTP     string `json:"otp"`
}

// Verify checks a code against the pending entry for the contact. The
// response is 200 either way; the success flag carries the outcome.
func (h *OTPHandler) Verify(c *gin.Context) {
	var body verifyRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid OTP"})
		return
	}

	ok, errVerify := h.otp.Verify(c.Request.Context(), strings.TrimSpace(body.Contact), strings.TrimSpace(body.OTP))
	if errVerify != nil {
		log.WithError(errVerify).Error("verify otp failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed"})
		return
	}

	if ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid OTP"})
}
