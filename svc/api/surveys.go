package api

import (
	"net/http"
	"strconv"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/logger"
	"github.com/surveyguy/surveykit/pkg/qrcode"
)

type qrCodeRequest struct {
	SurveyID string `path:"surveyID"`
	Size     int    `query:"size"`
}

type pngResponse struct {
	body []byte
}

func (p pngResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(p.body)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(p.body)
	return err
}

// surveyQRCode renders a PNG linking to the public survey page.
func (a *API) surveyQRCode(ctx handler.Context, req qrCodeRequest) handler.Response {
	png, err := qrcode.SurveyPNG(a.cfg.PublicBaseURL, req.SurveyID, req.Size)
	if err != nil {
		a.log.DebugContext(ctx, "qr code not generated", logger.Error(err))
		return errorResponse(err)
	}
	return pngResponse{body: png}
}
