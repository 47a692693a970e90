package handler

import (
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/media"
	"property-service/internal/service"

	"github.com/labstack/echo/v4"
)

// Multipart field names.
const (
	fieldDisplayImage     = "displayImage"
	fieldAdditionalImages = "additionalImages"
	fieldProfileImage     = "profileImage"
	fieldExistingImages   = "existingAdditionalImages"
	fieldKeepDisplayImage = "keepExistingDisplayImage"
)

// propertyForm is a parsed listing form. Close releases the opened uploads.
type propertyForm struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
	opened []io.Closer
}

func parsePropertyForm(c echo.Context) (*propertyForm, error) {
	if _, err := c.FormParams(); err != nil {
		return nil, apperror.Validation("Invalid form data")
	}
	req := c.Request()
	f := &propertyForm{values: req.PostForm}
	if req.MultipartForm != nil {
		f.files = req.MultipartForm.File
	}
	return f, nil
}

func (f *propertyForm) Close() {
	for _, c := range f.opened {
		_ = c.Close()
	}
	f.opened = nil
}

func (f *propertyForm) str(key string) *string {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := strings.TrimSpace(vals[0])
	return &v
}

func (f *propertyForm) number(key string) (*float64, error) {
	s := f.str(key)
	if s == nil || *s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.Validationf("%s must be a number", key)
	}
	return &v, nil
}

func (f *propertyForm) integer(key string) (*int, error) {
	s := f.str(key)
	if s == nil || *s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(*s)
	if err != nil {
		return nil, apperror.Validationf("%s must be a whole number", key)
	}
	return &v, nil
}

// fields decodes the editable listing fields. Address parts use bracket keys, e.g. address[area].
func (f *propertyForm) fields() (service.PropertyInput, error) {
	in := service.PropertyInput{
		PropertyType:    f.str("propertyType"),
		Title:           f.str("title"),
		TransactionType: f.str("transactionType"),
		Description:     f.str("description"),
		Status:          f.str("status"),
		AddressArea:     f.str("address[area]"),
		FullAddress:     f.str("address[fullAddress]"),
		PinCode:         f.str("address[pinCode]"),
	}

	var err error
	if in.Price, err = f.number("price"); err != nil {
		return in, err
	}
	if in.Area, err = f.number("area"); err != nil {
		return in, err
	}
	if in.YearBuilt, err = f.integer("yearBuilt"); err != nil {
		return in, err
	}
	if in.KeyFeatures, err = f.keyFeatures(); err != nil {
		return in, err
	}
	return in, nil
}

// keyFeatures accepts a JSON array, a comma-separated string or repeated fields.
// A value that opens with a bracket must be a well-formed array of strings.
func (f *propertyForm) keyFeatures() ([]string, error) {
	vals, ok := f.values["keyFeatures"]
	if !ok {
		vals, ok = f.values["keyFeatures[]"]
	}
	if !ok {
		return nil, nil
	}
	if len(vals) != 1 {
		return vals, nil
	}
	raw := strings.TrimSpace(vals[0])
	if !strings.HasPrefix(raw, "[") {
		return strings.Split(raw, ","), nil
	}
	list := []string{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, apperror.Validation("keyFeatures must be a JSON array of strings")
	}
	return list, nil
}

// retainImages decodes existingAdditionalImages. Nil means the field was not sent.
func (f *propertyForm) retainImages() ([]string, error) {
	s := f.str(fieldExistingImages)
	if s == nil || *s == "" {
		return nil, nil
	}
	ids := []string{}
	if err := json.Unmarshal([]byte(*s), &ids); err != nil {
		return nil, apperror.Validation("existingAdditionalImages must be a JSON array of publicIds")
	}
	return ids, nil
}

func (f *propertyForm) flag(key string) bool {
	s := f.str(key)
	return s != nil && strings.EqualFold(*s, "true")
}

// images checks and opens every upload under key.
func (f *propertyForm) images(key string, maxBytes int64) ([]media.File, error) {
	headers := f.files[key]
	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		file := media.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
		}
		if err := media.CheckFile(file, maxBytes); err != nil {
			return nil, err
		}
		src, err := fh.Open()
		if err != nil {
			return nil, apperror.Internal("open upload "+fh.Filename, err)
		}
		f.opened = append(f.opened, src)
		file.Content = src
		files = append(files, file)
	}
	return files, nil
}

// image returns the first upload under key, or nil.
func (f *propertyForm) image(key string, maxBytes int64) (*media.File, error) {
	files, err := f.images(key, maxBytes)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

func (f *propertyForm) createCommand(maxBytes int64) (service.CreatePropertyCommand, error) {
	var cmd service.CreatePropertyCommand
	var err error
	if cmd.Fields, err = f.fields(); err != nil {
		return cmd, err
	}
	if cmd.DisplayImage, err = f.image(fieldDisplayImage, maxBytes); err != nil {
		return cmd, err
	}
	if cmd.AdditionalImages, err = f.images(fieldAdditionalImages, maxBytes); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func (f *propertyForm) updateCommand(maxBytes int64) (service.UpdatePropertyCommand, error) {
	var cmd service.UpdatePropertyCommand
	var err error
	if cmd.Fields, err = f.fields(); err != nil {
		return cmd, err
	}
	if cmd.RetainImages, err = f.retainImages(); err != nil {
		return cmd, err
	}
	cmd.KeepDisplayImage = f.flag(fieldKeepDisplayImage)
	if cmd.NewDisplayImage, err = f.image(fieldDisplayImage, maxBytes); err != nil {
		return cmd, err
	}
	if cmd.NewAdditionalImages, err = f.images(fieldAdditionalImages, maxBytes); err != nil {
		return cmd, err
	}
	return cmd, nil
}
