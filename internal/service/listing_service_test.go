package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/media"
	"property-service/internal/model"
	"property-service/internal/repository"
	"property-service/pkg/cache"
	"property-service/pkg/config"
	"property-service/pkg/database"

	gormlogger "gorm.io/gorm/logger"
)

var testSite = config.SiteConfig{State: "Uttar Pradesh", City: "Meerut"}

func newTestStores(t *testing.T) *repository.Stores {
	t.Helper()
	db, err := database.InitDB(&config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "service.db"),
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
	return stores
}

// journal records repository writes and media calls in one sequence.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

func (j *journal) reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}

type journaledRepo struct {
	repository.PropertyRepository
	j     *journal
	lists int
}

func (r *journaledRepo) List(ctx context.Context, f model.PropertyFilter, p model.Page) ([]model.Property, int64, error) {
	r.lists++
	return r.PropertyRepository.List(ctx, f, p)
}

func (r *journaledRepo) Create(ctx context.Context, p *model.Property) error {
	r.j.add("repo:create")
	return r.PropertyRepository.Create(ctx, p)
}

func (r *journaledRepo) Update(ctx context.Context, p *model.Property) error {
	r.j.add("repo:update")
	return r.PropertyRepository.Update(ctx, p)
}

func (r *journaledRepo) Delete(ctx context.Context, id string) error {
	r.j.add("repo:delete")
	return r.PropertyRepository.Delete(ctx, id)
}

type journaledMedia struct {
	*media.MemoryStore
	j *journal
}

func (m *journaledMedia) Upload(ctx context.Context, f media.File) (model.Image, error) {
	img, err := m.MemoryStore.Upload(ctx, f)
	if err == nil {
		m.j.add("upload:%s", img.PublicID)
	}
	return img, err
}

func (m *journaledMedia) Delete(ctx context.Context, publicID string) error {
	m.j.add("delete:%s", publicID)
	return m.MemoryStore.Delete(ctx, publicID)
}

// memCache is a Cache kept in a map.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64
	hits int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Generation(_ context.Context, ns string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[ns], nil
}

func (c *memCache) Bump(_ context.Context, ns string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[ns]++
	return nil
}

var _ cache.Cache = (*memCache)(nil)

type listingFixture struct {
	svc   *ListingService
	repo  *journaledRepo
	users repository.UserRepository
	store *media.MemoryStore
	j     *journal
}

func newListingFixture(t *testing.T, c cache.Cache) *listingFixture {
	t.Helper()
	stores := newTestStores(t)
	j := &journal{}
	repo := &journaledRepo{PropertyRepository: stores.Properties, j: j}
	store := media.NewMemoryStore("http://media.test")
	svc := NewListingService(repo, stores.Users, &journaledMedia{MemoryStore: store, j: j}, c, testSite)
	return &listingFixture{svc: svc, repo: repo, users: stores.Users, store: store, j: j}
}

func image(name string) media.File {
	return media.File{Name: name, ContentType: "image/jpeg", Size: 4, Content: strings.NewReader("data")}
}

func images(n int) []media.File {
	files := make([]media.File, n)
	for i := range files {
		files[i] = image(fmt.Sprintf("extra-%d.jpg", i))
	}
	return files
}

func ptr[T any](v T) *T { return &v }

func validInput() PropertyInput {
	return PropertyInput{
		PropertyType:    ptr("Apartment"),
		Title:           ptr("Sunny flat"),
		Price:           ptr(4500000.0),
		TransactionType: ptr("Sale"),
		Area:            ptr(1100.0),
		Description:     ptr("Two bedrooms near the park"),
		KeyFeatures:     []string{"Parking", " Lift ", "Parking"},
		AddressArea:     ptr("Shastri Nagar"),
		FullAddress:     ptr("12 Park Road"),
		PinCode:         ptr("250004"),
	}
}

func (f *listingFixture) create(t *testing.T, extra int) *model.Property {
	t.Helper()
	display := image("display.jpg")
	p, err := f.svc.Create(context.Background(), CreatePropertyCommand{
		Fields:           validInput(),
		DisplayImage:     &display,
		AdditionalImages: images(extra),
		CreatedBy:        "admin-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.j.reset()
	return p
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func publicIDs(imgs []model.Image) []string {
	ids := make([]string, 0, len(imgs))
	for _, img := range imgs {
		ids = append(ids, img.PublicID)
	}
	return ids
}

func TestCreateListing(t *testing.T) {
	f := newListingFixture(t, nil)
	display := image("display.jpg")

	p, err := f.svc.Create(context.Background(), CreatePropertyCommand{
		Fields:           validInput(),
		DisplayImage:     &display,
		AdditionalImages: images(2),
		CreatedBy:        "admin-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := []string{"upload:mem-1", "upload:mem-2", "upload:mem-3", "repo:create"}
	if got := f.j.list(); !equalStrings(got, want) {
		t.Errorf("journal = %v, want %v", got, want)
	}
	if p.Address.State != "Uttar Pradesh" || p.Address.City != "Meerut" {
		t.Errorf("address = %+v, want site state and city", p.Address)
	}
	if p.Status != model.PropertyActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if !equalStrings(p.KeyFeatures, []string{"Parking", "Lift"}) {
		t.Errorf("keyFeatures = %v", p.KeyFeatures)
	}

	stored, err := f.svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.DisplayImage.PublicID != "mem-1" {
		t.Errorf("display image = %+v", stored.DisplayImage)
	}
	if got := publicIDs(stored.AdditionalImages); !equalStrings(got, []string{"mem-2", "mem-3"}) {
		t.Errorf("additional images = %v", got)
	}
	if stored.CreatedBy != "admin-1" {
		t.Errorf("createdBy = %q", stored.CreatedBy)
	}
}

func TestCreateRejectsBeforeUploading(t *testing.T) {
	display := image("display.jpg")
	tests := []struct {
		name    string
		cmd     CreatePropertyCommand
		message string
	}{
		{
			name:    "missing display image",
			cmd:     CreatePropertyCommand{Fields: validInput()},
			message: "Display image is required",
		},
		{
			name:    "too many images",
			cmd:     CreatePropertyCommand{Fields: validInput(), DisplayImage: &display, AdditionalImages: images(9)},
			message: "Maximum 8 additional images allowed",
		},
		{
			name: "invalid pin code",
			cmd: func() CreatePropertyCommand {
				in := validInput()
				in.PinCode = ptr("25000")
				return CreatePropertyCommand{Fields: in, DisplayImage: &display}
			}(),
			message: "Pin code must be exactly 6 digits",
		},
		{
			name: "missing price",
			cmd: func() CreatePropertyCommand {
				in := validInput()
				in.Price = nil
				return CreatePropertyCommand{Fields: in, DisplayImage: &display}
			}(),
			message: "price is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t, nil)
			_, err := f.svc.Create(context.Background(), tt.cmd)
			if !apperror.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("err = %q, want it to mention %q", err, tt.message)
			}
			if calls := f.store.Calls(); len(calls) != 0 {
				t.Errorf("media calls = %v, want none", calls)
			}
			page, err := f.svc.List(context.Background(), model.PropertyFilter{}, model.NewPage(1, 10))
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if page.Total != 0 {
				t.Errorf("total = %d, want 0", page.Total)
			}
		})
	}
}

func TestUpdateUploadsCommitsThenDeletes(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 3) // display mem-1, additional mem-2 mem-3 mem-4

	newDisplay := image("new-display.jpg")
	updated, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{
		Fields:              PropertyInput{Title: ptr("Renovated flat")},
		NewDisplayImage:     &newDisplay,
		NewAdditionalImages: images(1),
		RetainImages:        []string{"mem-2", "mem-4"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := []string{"upload:mem-5", "upload:mem-6", "repo:update", "delete:mem-1", "delete:mem-3"}
	if got := f.j.list(); !equalStrings(got, want) {
		t.Errorf("journal = %v, want %v", got, want)
	}

	stored, err := f.svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Title != "Renovated flat" || updated.Title != "Renovated flat" {
		t.Errorf("title = %q", stored.Title)
	}
	if stored.DisplayImage.PublicID != "mem-5" {
		t.Errorf("display image = %q, want mem-5", stored.DisplayImage.PublicID)
	}
	if got := publicIDs(stored.AdditionalImages); !equalStrings(got, []string{"mem-2", "mem-4", "mem-6"}) {
		t.Errorf("additional images = %v", got)
	}
	if stored.CreatedBy != "admin-1" {
		t.Errorf("createdBy = %q, want admin-1", stored.CreatedBy)
	}
	if !stored.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("createdAt changed from %v to %v", p.CreatedAt, stored.CreatedAt)
	}
	if f.store.Has("mem-1") || f.store.Has("mem-3") {
		t.Error("superseded assets still stored")
	}
}

func TestUpdateOverImageLimitChangesNothing(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 6)

	_, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{
		Fields:              PropertyInput{Title: ptr("Should not stick")},
		NewDisplayImage:     ptr(image("display-2.jpg")),
		NewAdditionalImages: images(3),
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "Please remove some existing images first") {
		t.Errorf("err = %q", err)
	}
	if got := f.j.list(); len(got) != 0 {
		t.Errorf("journal = %v, want no uploads, writes or deletes", got)
	}

	stored, err := f.svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Title != p.Title || len(stored.AdditionalImages) != 6 {
		t.Errorf("record changed: title %q, %d images", stored.Title, len(stored.AdditionalImages))
	}
}

func TestUpdateRetainedImages(t *testing.T) {
	tests := []struct {
		name    string
		retain  []string
		want    []string
		deleted []string
	}{
		{"absent list keeps all", nil, []string{"mem-2", "mem-3", "mem-4"}, nil},
		{"empty list removes all", []string{}, []string{}, []string{"mem-2", "mem-3", "mem-4"}},
		{"unknown ids ignored", []string{"mem-3", "other"}, []string{"mem-3"}, []string{"mem-2", "mem-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newListingFixture(t, nil)
			p := f.create(t, 3)

			if _, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{RetainImages: tt.retain}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			stored, err := f.svc.Get(context.Background(), p.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got := publicIDs(stored.AdditionalImages); !equalStrings(got, tt.want) {
				t.Errorf("additional images = %v, want %v", got, tt.want)
			}
			if got := f.store.Deleted(); !equalStrings(got, tt.deleted) {
				t.Errorf("deleted = %v, want %v", got, tt.deleted)
			}
			if stored.DisplayImage.PublicID != "mem-1" {
				t.Errorf("display image = %q, want kept", stored.DisplayImage.PublicID)
			}
		})
	}
}

func TestUpdateUploadFailureKeepsRecord(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 1)
	f.store.FailOn("upload", errors.New("cloud down"))

	_, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{
		NewDisplayImage: ptr(image("display-2.jpg")),
		RetainImages:    []string{},
	})
	if err == nil || apperror.KindOf(err) != apperror.KindInternal {
		t.Fatalf("err = %v, want internal error", err)
	}
	if deleted := f.store.Deleted(); len(deleted) != 0 {
		t.Errorf("deleted = %v, want none", deleted)
	}
	stored, err := f.svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.DisplayImage.PublicID != "mem-1" || len(stored.AdditionalImages) != 1 {
		t.Errorf("record changed: %+v", stored)
	}
}

func TestUpdateMissingListing(t *testing.T) {
	f := newListingFixture(t, nil)
	_, err := f.svc.Update(context.Background(), "missing", UpdatePropertyCommand{NewAdditionalImages: images(1)})
	if !apperror.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if calls := f.store.Calls(); len(calls) != 0 {
		t.Errorf("media calls = %v, want none", calls)
	}
}

func TestDeleteRemovesRecordThenAssets(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 2)

	if err := f.svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	want := []string{"repo:delete", "delete:mem-1", "delete:mem-2", "delete:mem-3"}
	if got := f.j.list(); !equalStrings(got, want) {
		t.Errorf("journal = %v, want %v", got, want)
	}
	if _, err := f.svc.Get(context.Background(), p.ID); !apperror.IsNotFound(err) {
		t.Errorf("Get after delete: err = %v, want not found", err)
	}
	if err := f.svc.Delete(context.Background(), p.ID); !apperror.IsNotFound(err) {
		t.Errorf("second Delete: err = %v, want not found", err)
	}
}

func TestDeleteSucceedsWhenAssetRemovalFails(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 1)
	f.store.FailOn("delete", errors.New("cloud down"))

	if err := f.svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := f.store.Deleted(); len(got) != 2 {
		t.Errorf("delete attempts = %v, want 2", got)
	}
	if _, err := f.svc.Get(context.Background(), p.ID); !apperror.IsNotFound(err) {
		t.Errorf("Get after delete: err = %v, want not found", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 0)

	if _, err := f.svc.UpdateStatus(context.Background(), p.ID, "archived"); !apperror.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
	got, err := f.svc.UpdateStatus(context.Background(), p.ID, "inactive")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != model.PropertyInactive {
		t.Errorf("status = %q", got.Status)
	}
	again, err := f.svc.UpdateStatus(context.Background(), p.ID, "inactive")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if again.Status != model.PropertyInactive {
		t.Errorf("status = %q", again.Status)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), "missing", "active"); !apperror.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestListServedFromCacheUntilWrite(t *testing.T) {
	c := newMemCache()
	f := newListingFixture(t, c)
	f.create(t, 0)
	ctx := context.Background()
	page := model.NewPage(1, 10)

	first, err := f.svc.List(ctx, model.PropertyFilter{}, page)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, err := f.svc.List(ctx, model.PropertyFilter{}, page)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.repo.lists != 1 || c.hits != 1 {
		t.Errorf("repo lists = %d, cache hits = %d, want 1 and 1", f.repo.lists, c.hits)
	}
	if first.Total != 1 || second.Total != 1 || len(second.Items) != 1 {
		t.Errorf("pages = %+v / %+v", first, second)
	}

	f.create(t, 0)
	third, err := f.svc.List(ctx, model.PropertyFilter{}, page)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.repo.lists != 2 || third.Total != 2 {
		t.Errorf("after create: repo lists = %d, total = %d", f.repo.lists, third.Total)
	}

	minPrice := 1.0
	if _, err := f.svc.List(ctx, model.PropertyFilter{MinPrice: &minPrice}, page); err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.repo.lists != 3 {
		t.Errorf("filtered list served from another filter's cache entry")
	}
}

func TestDashboardStats(t *testing.T) {
	f := newListingFixture(t, nil)
	f.create(t, 0)
	p := f.create(t, 0)
	if _, err := f.svc.UpdateStatus(context.Background(), p.ID, "inactive"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	stats, err := f.svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	want := model.DashboardStats{TotalProperties: 2, ActiveProperties: 1, InactiveProperties: 1, PropertiesAdded: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	f.svc.now = func() time.Time { return time.Now().UTC().Add(60 * 24 * time.Hour) }
	stats, err = f.svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.PropertiesAdded != 0 {
		t.Errorf("propertiesAdded = %d, want 0 outside the window", stats.PropertiesAdded)
	}
}

func TestReconcileImages(t *testing.T) {
	existing := []model.Image{{PublicID: "idA"}, {PublicID: "idB"}, {PublicID: "idC"}}
	retained, removed := reconcileImages(existing, []string{"idA", "idC"})
	if got := publicIDs(retained); !equalStrings(got, []string{"idA", "idC"}) {
		t.Errorf("retained = %v", got)
	}
	if got := publicIDs(removed); !equalStrings(got, []string{"idB"}) {
		t.Errorf("removed = %v", got)
	}
}

func TestUpdateKeepDisplayImageFlag(t *testing.T) {
	f := newListingFixture(t, nil)
	p := f.create(t, 1)

	kept, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{KeepDisplayImage: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if kept.DisplayImage != p.DisplayImage {
		t.Errorf("display image = %+v, want %+v", kept.DisplayImage, p.DisplayImage)
	}
	if got := f.j.list(); !equalStrings(got, []string{"repo:update"}) {
		t.Errorf("journal = %v, want only the record write", got)
	}

	f.j.reset()
	display := image("new.jpg")
	replaced, err := f.svc.Update(context.Background(), p.ID, UpdatePropertyCommand{KeepDisplayImage: true, NewDisplayImage: &display})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if replaced.DisplayImage.PublicID != "mem-3" {
		t.Errorf("display image = %q, want the new upload", replaced.DisplayImage.PublicID)
	}
	want := []string{"upload:mem-3", "repo:update", "delete:" + p.DisplayImage.PublicID}
	if got := f.j.list(); !equalStrings(got, want) {
		t.Errorf("journal = %v, want %v", got, want)
	}
}

func TestCreatorExpansion(t *testing.T) {
	f := newListingFixture(t, nil)
	ctx := context.Background()
	admin := &model.User{ID: "admin-1", Name: "Asha Admin", Email: "asha@example.com", Password: "hash", Role: model.RoleAdmin}
	if err := f.users.Create(ctx, admin); err != nil {
		t.Fatalf("create user: %v", err)
	}
	p := f.create(t, 0)

	view, err := f.svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := model.UserSummary{ID: "admin-1", Name: "Asha Admin", Email: "asha@example.com"}
	if view.Creator == nil || *view.Creator != want {
		t.Fatalf("creator = %+v, want %+v", view.Creator, want)
	}
	if view.CreatedBy != "admin-1" {
		t.Errorf("stored createdBy = %q, want the bare id", view.CreatedBy)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		CreatedBy model.UserSummary `json:"createdBy"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CreatedBy != want {
		t.Errorf("json createdBy = %+v, want %+v", decoded.CreatedBy, want)
	}

	display := image("display.jpg")
	orphan, err := f.svc.Create(ctx, CreatePropertyCommand{Fields: validInput(), DisplayImage: &display, CreatedBy: "gone"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	page, err := f.svc.List(ctx, model.PropertyFilter{}, model.NewPage(1, 10))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	for _, item := range page.Items {
		switch item.ID {
		case p.ID:
			if item.Creator == nil || *item.Creator != want {
				t.Errorf("creator of %s = %+v", item.ID, item.Creator)
			}
		case orphan.ID:
			if item.Creator != nil {
				t.Errorf("creator of orphan = %+v, want nil", item.Creator)
			}
		}
	}
}
