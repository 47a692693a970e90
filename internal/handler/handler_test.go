package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"property-service/internal/media"
	"property-service/internal/model"
	"property-service/internal/repository"
	"property-service/internal/service"
	"property-service/pkg/config"
	"property-service/pkg/database"
	"property-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	gormlogger "gorm.io/gorm/logger"
)

type testApp struct {
	e          *echo.Echo
	stores     *repository.Stores
	media      *media.MemoryStore
	auth       *service.AuthService
	adminToken string
	adminID    string
	ping       error
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.InitDB(&config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "api.db"),
		LogLevel:   gormlogger.Silent,
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	stores, err := repository.NewGormStores(db)
	if err != nil {
		t.Fatalf("NewGormStores: %v", err)
	}
	t.Cleanup(func() { stores.Close(context.Background()) })

	app := &testApp{stores: stores, media: media.NewMemoryStore("http://media.test")}
	tokens := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "handler-test-key", ExpirationHours: 1})
	app.auth = service.NewAuthService(stores.Users, tokens, app.media)
	listings := service.NewListingService(stores.Properties, stores.Users, app.media, nil, config.SiteConfig{State: "Uttar Pradesh", City: "Meerut"})
	inquiries := service.NewInquiryService(stores.Inquiries, stores.GeneralInquiries, stores.Properties, nil)

	const maxUpload = 5 * 1024 * 1024
	app.e = NewServer(ServerOptions{CORSOrigins: []string{"*"}, BodyLimit: "50M"}, Router{
		Properties:    NewPropertyHandler(listings, maxUpload),
		Inquiries:     NewInquiryHandler(inquiries),
		Auth:          NewAuthHandler(app.auth, maxUpload),
		Health:        NewHealthHandler(func(context.Context) error { return app.ping }),
		Authenticator: app.auth,
	})

	admin, _, err := app.auth.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "secret1")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	app.adminID = admin.ID
	app.adminToken = app.login(t, "admin@example.com", "secret1")
	return app
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", jsonBody(map[string]string{"email": email, "password": password}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, rec.Code, rec.Body)
	}
	return decode(t, rec).Token
}

type requestBody struct {
	contentType string
	body        io.Reader
}

func jsonBody(v interface{}) requestBody {
	b, _ := json.Marshal(v)
	return requestBody{contentType: echo.MIMEApplicationJSON, body: bytes.NewReader(b)}
}

type upload struct {
	field, name, contentType string
}

func multipartBody(t *testing.T, fields map[string]string, files ...upload) requestBody {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		part.Write([]byte("image-bytes"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return requestBody{contentType: w.FormDataContentType(), body: &buf}
}

func (a *testApp) do(t *testing.T, method, target, token string, body requestBody) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body.body)
	if body.contentType != "" {
		req.Header.Set(echo.HeaderContentType, body.contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int64           `json:"pages"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body)
	}
	env := decode(t, rec)
	if env.Success {
		t.Error("success = true on an error response")
	}
	if !strings.Contains(env.Message, message) {
		t.Errorf("message = %q, want it to contain %q", env.Message, message)
	}
}

func seedListings(t *testing.T, repo repository.PropertyRepository, n int, status model.PropertyStatus) []*model.Property {
	t.Helper()
	return seedListingsBy(t, repo, n, status, "seed")
}

func seedListingsBy(t *testing.T, repo repository.PropertyRepository, n int, status model.PropertyStatus, createdBy string) []*model.Property {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	var out []*model.Property
	for i := 0; i < n; i++ {
		p := &model.Property{
			PropertyType:    "Apartment",
			Title:           fmt.Sprintf("%s listing %02d", status, i),
			Price:           float64(1000000 + i*100000),
			TransactionType: "Sale",
			Area:            900,
			Description:     "Seeded",
			Status:          status,
			DisplayImage:    model.Image{URL: "http://media.test/seed", PublicID: fmt.Sprintf("seed-%s-%d", status, i)},
			Address:         model.Address{State: "Uttar Pradesh", City: "Meerut", Area: "Civil Lines", FullAddress: "1 Road", PinCode: "250001"},
			CreatedBy:       createdBy,
			CreatedAt:       base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func propertyFields() map[string]string {
	return map[string]string{
		"propertyType":         "Villa",
		"title":                "Garden villa",
		"price":                "8500000",
		"transactionType":      "Sale",
		"area":                 "2200",
		"description":          "Four bedrooms with a lawn",
		"yearBuilt":            "2018",
		"keyFeatures":          `["Garden","Parking"]`,
		"address[area]":        "Pallavpuram",
		"address[fullAddress]": "7 Lake Road",
		"address[pinCode]":     "250110",
	}
}

func TestListPropertiesEnvelope(t *testing.T) {
	app := newTestApp(t)
	seedListingsBy(t, app.stores.Properties, 15, model.PropertyActive, app.adminID)
	seedListings(t, app.stores.Properties, 3, model.PropertyInactive)

	rec := app.do(t, http.MethodGet, "/api/properties?status=active&page=2&limit=9&createdBy=x", "", requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	env := decode(t, rec)
	if !env.Success || env.Count != 6 || env.Total != 15 || env.Page != 2 || env.Pages != 2 {
		t.Errorf("envelope = success %v count %d total %d page %d pages %d", env.Success, env.Count, env.Total, env.Page, env.Pages)
	}

	var items []model.PropertyView
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Errorf("items not newest first at %d", i)
		}
	}
	for _, item := range items {
		if item.Creator == nil || item.Creator.ID != app.adminID || item.Creator.Email != "admin@example.com" || item.Creator.Name != "Admin" {
			t.Errorf("createdBy of %s = %+v, want the admin account", item.ID, item.Creator)
		}
	}
}

func TestListPropertiesEmptyAndBadQuery(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/properties?page=abc&limit=-4", "", requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if string(env.Data) != "[]" || env.Page != 1 || env.Pages != 0 {
		t.Errorf("data = %s, page = %d, pages = %d", env.Data, env.Page, env.Pages)
	}

	for query, message := range map[string]string{
		"minPrice=cheap": "minPrice must be a number",
		"minPrice=NaN":   "minPrice must be a number",
		"maxPrice=Inf":   "maxPrice must be a number",
		"maxPrice=-inf":  "maxPrice must be a number",
	} {
		rec = app.do(t, http.MethodGet, "/api/properties?"+query, "", requestBody{})
		expectError(t, rec, http.StatusBadRequest, message)
	}
}

func TestGetProperty(t *testing.T) {
	app := newTestApp(t)
	p := seedListingsBy(t, app.stores.Properties, 1, model.PropertyActive, app.adminID)[0]

	rec := app.do(t, http.MethodGet, "/api/properties/"+p.ID, "", requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got model.PropertyView
	if err := json.Unmarshal(decode(t, rec).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != p.ID || got.Title != p.Title {
		t.Errorf("got %+v", got)
	}
	want := model.UserSummary{ID: app.adminID, Name: "Admin", Email: "admin@example.com"}
	if got.Creator == nil || *got.Creator != want {
		t.Errorf("createdBy = %+v, want %+v", got.Creator, want)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("creator expansion leaks the password field")
	}

	orphan := seedListings(t, app.stores.Properties, 1, model.PropertyActive)[0]
	rec = app.do(t, http.MethodGet, "/api/properties/"+orphan.ID, "", requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var raw struct {
		CreatedBy json.RawMessage `json:"createdBy"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw.CreatedBy) != "null" {
		t.Errorf("createdBy of a listing without an account = %s, want null", raw.CreatedBy)
	}

	expectError(t, app.do(t, http.MethodGet, "/api/properties/missing", "", requestBody{}), http.StatusNotFound, "Property not found")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.auth.Register(context.Background(), service.RegisterInput{Name: "Viewer", Email: "viewer@example.com", Password: "secret1", Role: model.RoleUser}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	userToken := app.login(t, "viewer@example.com", "secret1")

	expectError(t, app.do(t, http.MethodGet, "/api/properties/stats/dashboard", "", requestBody{}), http.StatusUnauthorized, "Not authorized")
	expectError(t, app.do(t, http.MethodGet, "/api/properties/stats/dashboard", "not-a-token", requestBody{}), http.StatusUnauthorized, "Not authorized")
	expectError(t, app.do(t, http.MethodGet, "/api/inquiries", userToken, requestBody{}), http.StatusForbidden, "not authorized")

	rec := app.do(t, http.MethodGet, "/api/properties/stats/dashboard", app.adminToken, requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var stats model.DashboardStats
	if err := json.Unmarshal(decode(t, rec).Data, &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalProperties != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCreatePropertyMultipart(t *testing.T) {
	app := newTestApp(t)

	body := multipartBody(t, propertyFields(),
		upload{"displayImage", "front.jpg", "image/jpeg"},
		upload{"additionalImages", "hall.png", "image/png"},
		upload{"additionalImages", "kitchen.webp", "image/webp"},
	)
	rec := app.do(t, http.MethodPost, "/api/properties", app.adminToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var p model.Property
	if err := json.Unmarshal(decode(t, rec).Data, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.DisplayImage.PublicID != "mem-1" || len(p.AdditionalImages) != 2 {
		t.Errorf("images = %+v / %+v", p.DisplayImage, p.AdditionalImages)
	}
	if p.Address.City != "Meerut" || p.Address.Area != "Pallavpuram" || p.Address.PinCode != "250110" {
		t.Errorf("address = %+v", p.Address)
	}
	if len(p.KeyFeatures) != 2 || p.YearBuilt == nil || *p.YearBuilt != 2018 {
		t.Errorf("keyFeatures = %v, yearBuilt = %v", p.KeyFeatures, p.YearBuilt)
	}
	if p.CreatedBy == "" {
		t.Error("createdBy not set from the session")
	}
}

func TestCreatePropertyRejections(t *testing.T) {
	tests := []struct {
		name    string
		fields  func(map[string]string)
		files   []upload
		message string
	}{
		{"non-image upload", nil, []upload{{"displayImage", "notes.txt", "text/plain"}}, "Only image files are allowed"},
		{"unsupported format", nil, []upload{{"displayImage", "scan.gif", "image/gif"}}, "Image format must be one of"},
		{"missing display image", nil, nil, "Display image is required"},
		{"short pin code", func(f map[string]string) { f["address[pinCode]"] = "25000" }, []upload{{"displayImage", "a.jpg", "image/jpeg"}}, "Pin code must be exactly 6 digits"},
		{"non-numeric price", func(f map[string]string) { f["price"] = "lots" }, []upload{{"displayImage", "a.jpg", "image/jpeg"}}, "price must be a number"},
		{"infinite price", func(f map[string]string) { f["price"] = "Inf" }, []upload{{"displayImage", "a.jpg", "image/jpeg"}}, "price must be a number"},
		{"non-string key feature", func(f map[string]string) { f["keyFeatures"] = `["Garden", 5, "Parking"]` }, []upload{{"displayImage", "a.jpg", "image/jpeg"}}, "keyFeatures must be a JSON array of strings"},
		{"unterminated key features", func(f map[string]string) { f["keyFeatures"] = `["Garden", "Parking"` }, []upload{{"displayImage", "a.jpg", "image/jpeg"}}, "keyFeatures must be a JSON array of strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			fields := propertyFields()
			if tt.fields != nil {
				tt.fields(fields)
			}
			rec := app.do(t, http.MethodPost, "/api/properties", app.adminToken, multipartBody(t, fields, tt.files...))
			expectError(t, rec, http.StatusBadRequest, tt.message)
			if uploaded := app.media.Uploaded(); len(uploaded) != 0 {
				t.Errorf("uploaded = %v, want none", uploaded)
			}
		})
	}
}

func TestCreatePropertyTooManyImages(t *testing.T) {
	app := newTestApp(t)
	files := []upload{{"displayImage", "a.jpg", "image/jpeg"}}
	for i := 0; i < 9; i++ {
		files = append(files, upload{"additionalImages", fmt.Sprintf("x%d.jpg", i), "image/jpeg"})
	}
	rec := app.do(t, http.MethodPost, "/api/properties", app.adminToken, multipartBody(t, propertyFields(), files...))
	expectError(t, rec, http.StatusBadRequest, "Maximum 8 additional images allowed")
}

func TestMediaFailureIsServerError(t *testing.T) {
	app := newTestApp(t)
	app.media.FailOn("upload", errors.New("cloudinary: 401 invalid signature"))

	rec := app.do(t, http.MethodPost, "/api/properties", app.adminToken,
		multipartBody(t, propertyFields(), upload{"displayImage", "a.jpg", "image/jpeg"}))
	expectError(t, rec, http.StatusInternalServerError, "Server error")
	if strings.Contains(rec.Body.String(), "signature") {
		t.Errorf("internal detail leaked: %s", rec.Body)
	}
}

func TestUpdatePropertyMultipart(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/api/properties", app.adminToken, multipartBody(t, propertyFields(),
		upload{"displayImage", "front.jpg", "image/jpeg"},
		upload{"additionalImages", "a.jpg", "image/jpeg"},
		upload{"additionalImages", "b.jpg", "image/jpeg"},
		upload{"additionalImages", "c.jpg", "image/jpeg"},
	))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body)
	}
	var created model.Property
	json.Unmarshal(decode(t, rec).Data, &created)

	rec = app.do(t, http.MethodPut, "/api/properties/"+created.ID, app.adminToken, multipartBody(t,
		map[string]string{
			"title":                    "Garden villa, renovated",
			"existingAdditionalImages": `["mem-2","mem-4"]`,
			"keepExistingDisplayImage": "true",
		},
		upload{"additionalImages", "d.jpg", "image/jpeg"},
	))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body)
	}
	var updated model.Property
	json.Unmarshal(decode(t, rec).Data, &updated)

	if updated.Title != "Garden villa, renovated" || updated.DisplayImage.PublicID != "mem-1" {
		t.Errorf("updated = %+v", updated)
	}
	var ids []string
	for _, img := range updated.AdditionalImages {
		ids = append(ids, img.PublicID)
	}
	if strings.Join(ids, ",") != "mem-2,mem-4,mem-5" {
		t.Errorf("additional images = %v", ids)
	}
	if deleted := app.media.Deleted(); len(deleted) != 1 || deleted[0] != "mem-3" {
		t.Errorf("deleted = %v, want [mem-3]", deleted)
	}

	rec = app.do(t, http.MethodPut, "/api/properties/"+created.ID, app.adminToken, multipartBody(t,
		map[string]string{"existingAdditionalImages": "not json"}))
	expectError(t, rec, http.StatusBadRequest, "existingAdditionalImages")
}

func TestPropertyStatusAndDelete(t *testing.T) {
	app := newTestApp(t)
	p := seedListings(t, app.stores.Properties, 1, model.PropertyActive)[0]
	p.AdditionalImages = []model.Image{{URL: "u1", PublicID: "extra-1"}, {URL: "u2", PublicID: "extra-2"}}
	if err := app.stores.Properties.Update(context.Background(), p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rec := app.do(t, http.MethodPatch, "/api/properties/"+p.ID+"/status", app.adminToken, jsonBody(map[string]string{"status": "sold"}))
	expectError(t, rec, http.StatusBadRequest, "Status must be either active or inactive")

	rec = app.do(t, http.MethodPatch, "/api/properties/"+p.ID+"/status", app.adminToken, jsonBody(map[string]string{"status": "inactive"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body %s", rec.Code, rec.Body)
	}
	var got model.Property
	json.Unmarshal(decode(t, rec).Data, &got)
	if got.Status != model.PropertyInactive {
		t.Errorf("status = %q", got.Status)
	}

	rec = app.do(t, http.MethodDelete, "/api/properties/"+p.ID, app.adminToken, requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d, body %s", rec.Code, rec.Body)
	}
	if env := decode(t, rec); env.Message != "Property deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if deleted := app.media.Deleted(); len(deleted) != 3 {
		t.Errorf("deleted = %v, want display plus 2 additional", deleted)
	}
	expectError(t, app.do(t, http.MethodDelete, "/api/properties/"+p.ID, app.adminToken, requestBody{}), http.StatusNotFound, "Property not found")
}

func TestInquiryRoutes(t *testing.T) {
	app := newTestApp(t)
	p := seedListings(t, app.stores.Properties, 1, model.PropertyActive)[0]
	contact := map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "9876543210", "message": "Still available?"}

	missing := map[string]string{"property": "nope"}
	for k, v := range contact {
		missing[k] = v
	}
	expectError(t, app.do(t, http.MethodPost, "/api/inquiries", "", jsonBody(missing)), http.StatusNotFound, "Property not found")

	valid := map[string]string{"property": p.ID}
	for k, v := range contact {
		valid[k] = v
	}
	rec := app.do(t, http.MethodPost, "/api/inquiries", "", jsonBody(valid))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d, body %s", rec.Code, rec.Body)
	}
	var inq model.Inquiry
	json.Unmarshal(decode(t, rec).Data, &inq)

	expectError(t, app.do(t, http.MethodPost, "/api/inquiries", "", jsonBody(map[string]string{"property": p.ID})), http.StatusBadRequest, "is required")

	rec = app.do(t, http.MethodGet, "/api/inquiries?property="+p.ID, app.adminToken, requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	env := decode(t, rec)
	var views []struct {
		ID       string                 `json:"id"`
		Property *model.PropertySummary `json:"property"`
	}
	json.Unmarshal(env.Data, &views)
	if env.Total != 1 || len(views) != 1 || views[0].Property == nil || views[0].Property.Title != p.Title {
		t.Errorf("list = %s", env.Data)
	}

	rec = app.do(t, http.MethodPut, "/api/inquiries/"+inq.ID, app.adminToken, jsonBody(map[string]string{"status": "Archived"}))
	expectError(t, rec, http.StatusBadRequest, "Status must be New, Responded, or Closed")

	rec = app.do(t, http.MethodPut, "/api/inquiries/"+inq.ID, app.adminToken, jsonBody(map[string]string{"status": "Responded"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body %s", rec.Code, rec.Body)
	}

	rec = app.do(t, http.MethodGet, "/api/inquiries/stats", app.adminToken, requestBody{})
	var stats model.InquiryStats
	json.Unmarshal(decode(t, rec).Data, &stats)
	if stats.TotalInquiries != 1 || stats.RespondedInquiries != 1 {
		t.Errorf("stats = %+v", stats)
	}

	rec = app.do(t, http.MethodDelete, "/api/inquiries/"+inq.ID, app.adminToken, requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	expectError(t, app.do(t, http.MethodGet, "/api/inquiries/"+inq.ID, app.adminToken, requestBody{}), http.StatusNotFound, "Inquiry not found")
}

func TestGeneralInquiryRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/general-inquiries", "", jsonBody(map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "phone": "1234567890", "message": "Selling a plot", "inquiryType": "Selling",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d, body %s", rec.Code, rec.Body)
	}
	var g model.GeneralInquiry
	json.Unmarshal(decode(t, rec).Data, &g)

	expectError(t, app.do(t, http.MethodGet, "/api/general-inquiries", "", requestBody{}), http.StatusUnauthorized, "Not authorized")

	rec = app.do(t, http.MethodGet, "/api/general-inquiries?status=New", app.adminToken, requestBody{})
	if env := decode(t, rec); env.Total != 1 || env.Count != 1 {
		t.Errorf("list total = %d, count = %d", env.Total, env.Count)
	}

	rec = app.do(t, http.MethodPut, "/api/general-inquiries/"+g.ID, app.adminToken, jsonBody(map[string]string{"status": "Closed"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body %s", rec.Code, rec.Body)
	}
	rec = app.do(t, http.MethodGet, "/api/general-inquiries/stats", app.adminToken, requestBody{})
	var stats model.InquiryStats
	json.Unmarshal(decode(t, rec).Data, &stats)
	if stats.ClosedInquiries != 1 {
		t.Errorf("stats = %+v", stats)
	}

	rec = app.do(t, http.MethodDelete, "/api/general-inquiries/"+g.ID, app.adminToken, requestBody{})
	if env := decode(t, rec); env.Message != "General inquiry deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthRoutes(t *testing.T) {
	app := newTestApp(t)

	expectError(t, app.do(t, http.MethodPost, "/api/auth/login", "", jsonBody(map[string]string{"email": "admin@example.com", "password": "wrong"})), http.StatusUnauthorized, "Invalid credentials")

	rec := app.do(t, http.MethodGet, "/api/auth/me", app.adminToken, requestBody{})
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("password hash exposed: %s", rec.Body)
	}

	rec = app.do(t, http.MethodPost, "/api/auth/register", app.adminToken, jsonBody(map[string]string{"name": "Second", "email": "admin@example.com", "password": "secret1"}))
	expectError(t, rec, http.StatusConflict, "User already exists with this email")

	rec = app.do(t, http.MethodPut, "/api/auth/updatepassword", app.adminToken, jsonBody(map[string]string{"currentPassword": "secret1", "newPassword": "123"}))
	expectError(t, rec, http.StatusBadRequest, "newPassword")

	rec = app.do(t, http.MethodPut, "/api/auth/updatepassword", app.adminToken, jsonBody(map[string]string{"currentPassword": "secret1", "newPassword": "secret2"}))
	if rec.Code != http.StatusOK || decode(t, rec).Token == "" {
		t.Fatalf("updatepassword: %d, body %s", rec.Code, rec.Body)
	}

	rec = app.do(t, http.MethodPut, "/api/auth/updatedetails", app.adminToken, multipartBody(t,
		map[string]string{"name": "Chief Admin"}, upload{"profileImage", "me.png", "image/png"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("updatedetails: %d, body %s", rec.Code, rec.Body)
	}
	var user model.User
	json.Unmarshal(decode(t, rec).Data, &user)
	if user.Name != "Chief Admin" || user.ProfileImage == nil {
		t.Errorf("user = %+v", user)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := newTestApp(t)
	expectError(t, app.do(t, http.MethodGet, "/api/nothing-here", "", requestBody{}), http.StatusNotFound, "Not Found")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health?check=db", "", requestBody{})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"db_status":"ok"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body)
	}

	app.ping = errors.New("connection refused")
	rec = app.do(t, http.MethodGet, "/health?check=db", "", requestBody{})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}
