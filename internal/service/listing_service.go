package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/media"
	"property-service/internal/model"
	"property-service/internal/repository"
	"property-service/pkg/cache"
	"property-service/pkg/config"
	"property-service/pkg/logger"
	"property-service/prometheus"

	"go.uber.org/zap"
)

const (
	listingCacheNamespace = "properties"
	statsWindow           = 30 * 24 * time.Hour
)

// PropertyInput carries the editable listing fields. Nil means "not provided".
type PropertyInput struct {
	PropertyType    *string
	Title           *string
	Price           *float64
	TransactionType *string
	Area            *float64
	Description     *string
	YearBuilt       *int
	KeyFeatures     []string
	Status          *string
	AddressArea     *string
	FullAddress     *string
	PinCode         *string
}

// CreatePropertyCommand is a decoded create request.
type CreatePropertyCommand struct {
	Fields           PropertyInput
	DisplayImage     *media.File
	AdditionalImages []media.File
	CreatedBy        string
}

// UpdatePropertyCommand is a decoded update request.
type UpdatePropertyCommand struct {
	Fields          PropertyInput
	NewDisplayImage *media.File
	// KeepDisplayImage asks to keep the stored display image. A non-nil
	// NewDisplayImage takes precedence. With neither set the stored image stays.
	KeepDisplayImage    bool
	NewAdditionalImages []media.File
	// RetainImages lists the publicIds of existing additional images to keep.
	// Nil keeps all of them.
	RetainImages []string
}

// ListingPage is one page of listings.
type ListingPage struct {
	Items []model.PropertyView `json:"items"`
	Total int64                `json:"total"`
}

// cachedPage is the stored form of a page. Creators are expanded after the
// cache so renamed accounts show up without a listing write.
type cachedPage struct {
	Items []model.Property `json:"items"`
	Total int64            `json:"total"`
}

// ListingService manages listings and their hosted images.
type ListingService struct {
	repo  repository.PropertyRepository
	users repository.UserRepository
	media media.Store
	cache cache.Cache
	site  config.SiteConfig
	now   func() time.Time
}

// NewListingService wires a ListingService. c may be nil to disable caching.
func NewListingService(repo repository.PropertyRepository, users repository.UserRepository, store media.Store, c cache.Cache, site config.SiteConfig) *ListingService {
	return &ListingService{
		repo:  repo,
		users: users,
		media: store,
		cache: c,
		site:  site,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns a page of listings, newest first, with creators expanded.
func (s *ListingService) List(ctx context.Context, filter model.PropertyFilter, page model.Page) (*ListingPage, error) {
	raw, err := s.listCached(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, raw.Items)
	if err != nil {
		return nil, err
	}
	return &ListingPage{Items: views, Total: raw.Total}, nil
}

func (s *ListingService) listCached(ctx context.Context, filter model.PropertyFilter, page model.Page) (*cachedPage, error) {
	log := logger.FromCtx(ctx)

	key := ""
	if s.cache != nil {
		if gen, err := s.cache.Generation(ctx, listingCacheNamespace); err != nil {
			log.Warn("Listing cache unavailable", zap.Error(err))
		} else {
			key = cache.QueryKey(listingCacheNamespace, gen, listingCacheParams(filter, page))
			var cached cachedPage
			hit, err := s.cache.Get(ctx, key, &cached)
			if err != nil {
				log.Warn("Listing cache read failed", zap.Error(err))
			}
			prometheus.RecordCacheLookup(hit)
			if hit {
				return &cached, nil
			}
		}
	}

	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	result := &cachedPage{Items: items, Total: total}

	if key != "" {
		if err := s.cache.Set(ctx, key, result); err != nil {
			log.Warn("Listing cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// expand joins the creator projection onto each listing in one batched lookup.
func (s *ListingService) expand(ctx context.Context, items []model.Property) ([]model.PropertyView, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, p := range items {
		if _, ok := seen[p.CreatedBy]; ok || p.CreatedBy == "" {
			continue
		}
		seen[p.CreatedBy] = struct{}{}
		ids = append(ids, p.CreatedBy)
	}

	creators, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.PropertyView, 0, len(items))
	for _, p := range items {
		view := model.PropertyView{Property: p}
		if c, ok := creators[p.CreatedBy]; ok {
			view.Creator = &c
		}
		views = append(views, view)
	}
	return views, nil
}

func listingCacheParams(f model.PropertyFilter, page model.Page) map[string]string {
	params := map[string]string{
		"page":  strconv.Itoa(page.Number),
		"limit": strconv.Itoa(page.Limit),
	}
	add := func(k, v string) {
		if v != "" {
			params[k] = v
		}
	}
	add("status", f.Status)
	add("propertyType", f.PropertyType)
	add("transactionType", f.TransactionType)
	add("area", f.Area)
	if f.MinPrice != nil {
		params["minPrice"] = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		params["maxPrice"] = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	return params
}

// Get returns one listing with its creator expanded.
func (s *ListingService) Get(ctx context.Context, id string) (*model.PropertyView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, []model.Property{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create uploads the images of a new listing and stores it.
func (s *ListingService) Create(ctx context.Context, cmd CreatePropertyCommand) (*model.Property, error) {
	log := logger.FromCtx(ctx)
	now := s.now()

	if cmd.DisplayImage == nil {
		return nil, apperror.Validation("Display image is required")
	}
	if len(cmd.AdditionalImages) > model.MaxAdditionalImages {
		return nil, apperror.Validationf("Maximum %d additional images allowed", model.MaxAdditionalImages)
	}
	if err := requireCreateFields(cmd.Fields); err != nil {
		return nil, err
	}

	p := &model.Property{
		Status:    model.PropertyActive,
		CreatedBy: cmd.CreatedBy,
		Address:   model.Address{State: s.site.State, City: s.site.City},
	}
	s.apply(p, cmd.Fields)
	if err := p.ValidateFields(now); err != nil {
		return nil, err
	}

	display, err := s.upload(ctx, *cmd.DisplayImage)
	if err != nil {
		return nil, err
	}
	p.DisplayImage = display

	additional, err := s.uploadAll(ctx, cmd.AdditionalImages)
	if err != nil {
		return nil, err
	}
	p.AdditionalImages = additional

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	prometheus.RecordPropertyOperation("create")

	log.Info("Property created",
		zap.String("property_id", p.ID),
		zap.String("title", p.Title),
		zap.Int("additional_images", len(p.AdditionalImages)))
	return p, nil
}

func requireCreateFields(in PropertyInput) error {
	switch {
	case in.Price == nil:
		return apperror.Validation("price is required")
	case in.Area == nil:
		return apperror.Validation("area is required")
	}
	return nil
}

// Update edits a listing. New images are uploaded first, the record is
// committed next, and superseded images are deleted last.
func (s *ListingService) Update(ctx context.Context, id string, cmd UpdatePropertyCommand) (*model.Property, error) {
	log := logger.FromCtx(ctx)
	now := s.now()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	retained, removed := reconcileImages(current.AdditionalImages, cmd.RetainImages)
	if len(retained)+len(cmd.NewAdditionalImages) > model.MaxAdditionalImages {
		return nil, apperror.Validationf("Maximum %d additional images allowed. Please remove some existing images first.", model.MaxAdditionalImages)
	}

	next := current.Clone()
	s.apply(next, cmd.Fields)
	if err := next.ValidateFields(now); err != nil {
		return nil, err
	}

	// A new upload wins over the keep flag
	var superseded []string
	switch {
	case cmd.NewDisplayImage != nil:
		display, err := s.upload(ctx, *cmd.NewDisplayImage)
		if err != nil {
			return nil, err
		}
		if current.DisplayImage.PublicID != "" {
			superseded = append(superseded, current.DisplayImage.PublicID)
		}
		next.DisplayImage = display
	case cmd.KeepDisplayImage:
		next.DisplayImage = current.DisplayImage
	}

	uploaded, err := s.uploadAll(ctx, cmd.NewAdditionalImages)
	if err != nil {
		return nil, err
	}
	next.AdditionalImages = append(retained, uploaded...)

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	for _, img := range removed {
		superseded = append(superseded, img.PublicID)
	}
	s.deleteAssets(ctx, id, superseded)
	prometheus.RecordPropertyOperation("update")

	log.Info("Property updated",
		zap.String("property_id", id),
		zap.Bool("display_image_replaced", cmd.NewDisplayImage != nil),
		zap.Bool("keep_display_image", cmd.KeepDisplayImage),
		zap.Int("images_added", len(uploaded)),
		zap.Int("images_removed", len(removed)))
	return next, nil
}

// reconcileImages splits existing images into those listed in keep and the rest.
// A nil keep list retains everything.
func reconcileImages(existing []model.Image, keep []string) (retained, removed []model.Image) {
	retained = []model.Image{}
	if keep == nil {
		return append(retained, existing...), nil
	}
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}
	for _, img := range existing {
		if _, ok := keepSet[img.PublicID]; ok {
			retained = append(retained, img)
		} else {
			removed = append(removed, img)
		}
	}
	return retained, removed
}

// UpdateStatus sets a listing active or inactive.
func (s *ListingService) UpdateStatus(ctx context.Context, id, status string) (*model.Property, error) {
	if !model.ValidPropertyStatus(status) {
		return nil, apperror.Validation("Status must be either active or inactive")
	}
	p, err := s.repo.UpdateStatus(ctx, id, model.PropertyStatus(status))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	prometheus.RecordPropertyOperation("status_" + status)

	logger.FromCtx(ctx).Info("Property status updated",
		zap.String("property_id", id),
		zap.String("status", status))
	return p, nil
}

// Delete removes a listing, then every image it referenced.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	var ids []string
	for _, img := range p.Images() {
		ids = append(ids, img.PublicID)
	}
	s.deleteAssets(ctx, id, ids)
	prometheus.RecordPropertyOperation("delete")

	logger.FromCtx(ctx).Info("Property deleted",
		zap.String("property_id", id),
		zap.Int("images_deleted", len(ids)))
	return nil
}

// DashboardStats counts listings, new ones over the trailing 30 days.
func (s *ListingService) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return s.repo.Stats(ctx, s.now().Add(-statsWindow))
}

func (s *ListingService) apply(p *model.Property, in PropertyInput) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&p.PropertyType, in.PropertyType)
	setString(&p.Title, in.Title)
	setString(&p.TransactionType, in.TransactionType)
	setString(&p.Description, in.Description)
	setString(&p.Address.Area, in.AddressArea)
	setString(&p.Address.FullAddress, in.FullAddress)
	setString(&p.Address.PinCode, in.PinCode)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.YearBuilt != nil {
		y := *in.YearBuilt
		p.YearBuilt = &y
	}
	if in.KeyFeatures != nil {
		p.KeyFeatures = model.NormalizeFeatures(in.KeyFeatures)
	}
	if in.Status != nil {
		p.Status = model.PropertyStatus(*in.Status)
	}
	// address state and city are never edited
	p.Normalize()
}

func (s *ListingService) upload(ctx context.Context, f media.File) (model.Image, error) {
	img, err := s.media.Upload(ctx, f)
	if err != nil {
		return model.Image{}, apperror.Internal(fmt.Sprintf("upload image %s", f.Name), err)
	}
	return img, nil
}

func (s *ListingService) uploadAll(ctx context.Context, files []media.File) ([]model.Image, error) {
	images := make([]model.Image, 0, len(files))
	for _, f := range files {
		img, err := s.upload(ctx, f)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// deleteAssets removes hosted images no record references any more. Failures leave orphans and are only logged.
func (s *ListingService) deleteAssets(ctx context.Context, propertyID string, publicIDs []string) {
	log := logger.FromCtx(ctx)
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := s.media.Delete(ctx, id); err != nil {
			log.Warn("Failed to delete image",
				zap.String("property_id", propertyID),
				zap.String("public_id", id),
				zap.Error(err))
		}
	}
}

func (s *ListingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx, listingCacheNamespace); err != nil {
		logger.FromCtx(ctx).Warn("Listing cache invalidation failed", zap.Error(err))
	}
}
