package payments

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const qrImageBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=220x220&data="

// NewPaymentCode код платежа: префикс, миллисекунды и 6 hex символов случайности
func NewPaymentCode(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s%d%s", prefix, now.UnixMilli(), random)
}

// QRImageURL ссылка на картинку QR кода для текста PIX
func QRImageURL(qrText string) string {
	return qrImageBaseURL + url.QueryEscape(qrText)
}
