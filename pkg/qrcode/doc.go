// Package qrcode renders survey share links as QR codes with
// github.com/skip2/go-qrcode.
//
//	png, err := qrcode.SurveyPNG("https://surveys.example.com", surveyID, 0)
//	if err != nil {
//		return err
//	}
//	img := qrcode.DataURI(png) // "data:image/png;base64,..."
//
// QR codes are a plan feature (entitlement.PathQRCodes); callers gate access
// before generating.
package qrcode
