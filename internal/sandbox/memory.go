package sandbox

import (
	"errors"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storeadmin/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalid   = errors.New("invalid input")
	ErrDuplicate = errors.New("already exists")
	ErrBadCreds  = errors.New("invalid credentials")
)

type category struct {
	ID    int
	Name  string
	Image string
}

type product struct {
	domain.Product
	imageIDs []int
}

// Memory is the in-memory catalog behind the sandbox server.
type Memory struct {
	mu sync.RWMutex

	next map[string]int

	brands     map[int]domain.Brand
	categories map[int]category
	subs       map[int]domain.SubCategory
	colors     map[int]domain.Color
	products   map[int]*product
	images     map[int]string // image id -> stored name
	blobs      map[string][]byte
	users      map[string][]byte // user name -> bcrypt hash
	tokens     map[string]string // token -> user name
}

func NewMemory() *Memory {
	return &Memory{
		next:       map[string]int{},
		brands:     map[int]domain.Brand{},
		categories: map[int]category{},
		subs:       map[int]domain.SubCategory{},
		colors:     map[int]domain.Color{},
		products:   map[int]*product{},
		images:     map[int]string{},
		blobs:      map[string][]byte{},
		users:      map[string][]byte{},
		tokens:     map[string]string{},
	}
}

func (m *Memory) id(kind string) int {
	m.next[kind]++
	return m.next[kind]
}

func sortedKeys[V any](in map[int]V) []int {
	keys := make([]int, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func clean(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return "", ErrInvalid
	}
	return name, nil
}

// Accounts

func (m *Memory) Register(user, pass string) error {
	user = strings.TrimSpace(user)
	if user == "" || pass == "" {
		return ErrInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user]; ok {
		return ErrDuplicate
	}
	m.users[user] = hash
	return nil
}

// Login checks the password and issues a fresh opaque token.
func (m *Memory) Login(user, pass string) (string, error) {
	m.mu.RLock()
	hash, ok := m.users[strings.TrimSpace(user)]
	m.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(pass)) != nil {
		return "", ErrBadCreds
	}
	tok := uuid.NewString()
	m.mu.Lock()
	m.tokens[tok] = user
	m.mu.Unlock()
	return tok, nil
}

func (m *Memory) ValidToken(tok string) bool {
	if tok == "" {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[tok]
	return ok
}

// Brands

func (m *Memory) Brands() []domain.Brand {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Brand, 0, len(m.brands))
	for _, id := range sortedKeys(m.brands) {
		out = append(out, m.brands[id])
	}
	return out
}

func (m *Memory) AddBrand(name string) (domain.Brand, error) {
	name, err := clean(name)
	if err != nil {
		return domain.Brand{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if strings.EqualFold(b.Name, name) {
			return domain.Brand{}, ErrDuplicate
		}
	}
	b := domain.Brand{ID: m.id("brand"), Name: name}
	m.brands[b.ID] = b
	return b, nil
}

func (m *Memory) UpdateBrand(id int, name string) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[id]; !ok {
		return ErrNotFound
	}
	m.brands[id] = domain.Brand{ID: id, Name: name}
	return nil
}

func (m *Memory) DeleteBrand(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[id]; !ok {
		return ErrNotFound
	}
	delete(m.brands, id)
	return nil
}

// Colors

// Colors filters by name substring and pages the result. pageNumber and
// pageSize of 0 return everything.
func (m *Memory) Colors(nameLike string, pageNumber, pageSize int) ([]domain.Color, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(nameLike))
	all := make([]domain.Color, 0, len(m.colors))
	for _, id := range sortedKeys(m.colors) {
		c := m.colors[id]
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			all = append(all, c)
		}
	}
	return page(all, pageNumber, pageSize), len(all)
}

func (m *Memory) AddColor(name string) (domain.Color, error) {
	name, err := clean(name)
	if err != nil {
		return domain.Color{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Color{ID: m.id("color"), Name: name}
	m.colors[c.ID] = c
	return c, nil
}

func (m *Memory) UpdateColor(id int, name string) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colors[id]; !ok {
		return ErrNotFound
	}
	m.colors[id] = domain.Color{ID: id, Name: name}
	return nil
}

func (m *Memory) DeleteColor(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.colors[id]; !ok {
		return ErrNotFound
	}
	delete(m.colors, id)
	return nil
}

// Categories

func (m *Memory) categoryLocked(id int) domain.Category {
	c := m.categories[id]
	out := domain.Category{ID: c.ID, Name: c.Name, Image: c.Image, SubCategories: []domain.SubCategory{}}
	for _, sid := range sortedKeys(m.subs) {
		if s := m.subs[sid]; s.CategoryID == id {
			out.SubCategories = append(out.SubCategories, s)
		}
	}
	return out
}

func (m *Memory) Categories() []domain.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Category, 0, len(m.categories))
	for _, id := range sortedKeys(m.categories) {
		out = append(out, m.categoryLocked(id))
	}
	return out
}

func (m *Memory) Category(id int) (domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.categories[id]; !ok {
		return domain.Category{}, ErrNotFound
	}
	return m.categoryLocked(id), nil
}

func (m *Memory) AddCategory(name string, img *domain.Upload) (domain.Category, error) {
	name, err := clean(name)
	if err != nil {
		return domain.Category{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := category{ID: m.id("category"), Name: name}
	if img != nil {
		c.Image = m.storeBlobLocked(*img)
	}
	m.categories[c.ID] = c
	return m.categoryLocked(c.ID), nil
}

// UpdateCategory keeps the current image when img is nil.
func (m *Memory) UpdateCategory(id int, name string, img *domain.Upload) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return ErrNotFound
	}
	c.Name = name
	if img != nil {
		delete(m.blobs, c.Image)
		c.Image = m.storeBlobLocked(*img)
	}
	m.categories[id] = c
	return nil
}

// DeleteCategory cascades to the category's sub-categories.
func (m *Memory) DeleteCategory(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return ErrNotFound
	}
	for sid, s := range m.subs {
		if s.CategoryID == id {
			delete(m.subs, sid)
		}
	}
	delete(m.blobs, c.Image)
	delete(m.categories, id)
	return nil
}

// Sub-categories

func (m *Memory) SubCategories(categoryID int) []domain.SubCategory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.SubCategory, 0, len(m.subs))
	for _, id := range sortedKeys(m.subs) {
		if s := m.subs[id]; categoryID == 0 || s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}

func (m *Memory) SubCategory(id int) (domain.SubCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[id]
	if !ok {
		return domain.SubCategory{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) AddSubCategory(name string, categoryID int) (domain.SubCategory, error) {
	name, err := clean(name)
	if err != nil {
		return domain.SubCategory{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[categoryID]; !ok {
		return domain.SubCategory{}, ErrNotFound
	}
	s := domain.SubCategory{ID: m.id("subcategory"), Name: name, CategoryID: categoryID}
	m.subs[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateSubCategory(id int, name string) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subs[id]
	if !ok {
		return ErrNotFound
	}
	s.Name = name
	m.subs[id] = s
	return nil
}

func (m *Memory) DeleteSubCategory(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[id]; !ok {
		return ErrNotFound
	}
	delete(m.subs, id)
	return nil
}

// Products

// ProductFilter mirrors the query parameters of the product list endpoint.
type ProductFilter struct {
	Name          string
	BrandID       int
	ColorID       int
	CategoryID    int
	SubCategoryID int
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	PageNumber    int
	PageSize      int
}

func (f ProductFilter) match(p domain.Product) bool {
	switch {
	case f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)):
		return false
	case f.BrandID > 0 && p.BrandID != f.BrandID:
		return false
	case f.ColorID > 0 && p.ColorID != f.ColorID:
		return false
	case f.CategoryID > 0 && p.CategoryID != f.CategoryID:
		return false
	case f.SubCategoryID > 0 && p.SubCategoryID != f.SubCategoryID:
		return false
	case f.MinPrice != nil && p.Price.LessThan(*f.MinPrice):
		return false
	case f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice):
		return false
	}
	return true
}

// Products returns the filtered page plus the total match count. The price
// range covers every match, not just the page.
func (m *Memory) Products(f ProductFilter) (domain.ProductPage, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := []domain.Product{}
	var pr domain.PriceRange
	for _, id := range sortedKeys(m.products) {
		p := m.viewLocked(m.products[id])
		if !f.match(p) {
			continue
		}
		if len(matched) == 0 || p.Price.LessThan(pr.MinPrice) {
			pr.MinPrice = p.Price
		}
		if len(matched) == 0 || p.Price.GreaterThan(pr.MaxPrice) {
			pr.MaxPrice = p.Price
		}
		matched = append(matched, p)
	}
	out := domain.ProductPage{
		Products:    page(matched, f.PageNumber, f.PageSize),
		Colors:      make([]domain.Color, 0, len(m.colors)),
		Brands:      make([]domain.Brand, 0, len(m.brands)),
		MinMaxPrice: pr,
	}
	for _, id := range sortedKeys(m.colors) {
		out.Colors = append(out.Colors, m.colors[id])
	}
	for _, id := range sortedKeys(m.brands) {
		out.Brands = append(out.Brands, m.brands[id])
	}
	return out, len(matched)
}

// viewLocked fills the denormalized fields the list endpoint returns.
func (m *Memory) viewLocked(rec *product) domain.Product {
	p := rec.Product
	p.Color = m.colors[p.ColorID].Name
	if s, ok := m.subs[p.SubCategoryID]; ok {
		p.CategoryID = s.CategoryID
		p.CategoryName = m.categories[s.CategoryID].Name
	}
	p.Images = make([]domain.ProductImage, 0, len(rec.imageIDs))
	for _, iid := range rec.imageIDs {
		p.Images = append(p.Images, domain.ProductImage{ID: iid, Name: m.images[iid]})
	}
	p.Image = ""
	if len(p.Images) > 0 {
		p.Image = p.Images[0].Name
	}
	return p
}

func (m *Memory) checkProductLocked(in domain.ProductInput) error {
	if _, err := clean(in.Name); err != nil {
		return err
	}
	if strings.TrimSpace(in.Code) == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return ErrInvalid
	}
	if _, ok := m.brands[in.BrandID]; !ok {
		return ErrInvalid
	}
	if _, ok := m.colors[in.ColorID]; !ok {
		return ErrInvalid
	}
	if _, ok := m.subs[in.SubCategoryID]; !ok {
		return ErrInvalid
	}
	return nil
}

func applyProduct(p *domain.Product, in domain.ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Code = strings.TrimSpace(in.Code)
	p.Price = in.Price
	p.HasDiscount = in.HasDiscount
	p.DiscountPrice = decimal.Zero
	if in.HasDiscount && in.DiscountPrice != nil {
		p.DiscountPrice = *in.DiscountPrice
	}
	p.Quantity = in.Quantity
	p.BrandID = in.BrandID
	p.ColorID = in.ColorID
	p.SubCategoryID = in.SubCategoryID
	p.Weight = in.Weight
	p.Size = in.Size
}

func (m *Memory) AddProduct(in domain.ProductInput) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkProductLocked(in); err != nil {
		return domain.Product{}, err
	}
	rec := &product{}
	rec.ID = m.id("product")
	applyProduct(&rec.Product, in)
	for _, img := range in.Images {
		m.attachLocked(rec, img)
	}
	m.products[rec.ID] = rec
	return m.viewLocked(rec), nil
}

// UpdateProduct replaces all fields; uploaded images are appended.
func (m *Memory) UpdateProduct(id int, in domain.ProductInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	if err := m.checkProductLocked(in); err != nil {
		return err
	}
	applyProduct(&rec.Product, in)
	for _, img := range in.Images {
		m.attachLocked(rec, img)
	}
	return nil
}

func (m *Memory) DeleteProduct(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	for _, iid := range rec.imageIDs {
		delete(m.blobs, m.images[iid])
		delete(m.images, iid)
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) DeleteProductImage(imageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.images[imageID]
	if !ok {
		return ErrNotFound
	}
	for _, rec := range m.products {
		for i, iid := range rec.imageIDs {
			if iid == imageID {
				rec.imageIDs = append(rec.imageIDs[:i], rec.imageIDs[i+1:]...)
				break
			}
		}
	}
	delete(m.images, imageID)
	delete(m.blobs, name)
	return nil
}

func (m *Memory) attachLocked(rec *product, img domain.Upload) {
	iid := m.id("image")
	m.images[iid] = m.storeBlobLocked(img)
	rec.imageIDs = append(rec.imageIDs, iid)
}

func (m *Memory) storeBlobLocked(img domain.Upload) string {
	name := uuid.NewString() + strings.ToLower(path.Ext(img.FileName))
	m.blobs[name] = img.Content
	return name
}

// Image returns the bytes of a stored upload.
func (m *Memory) Image(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[name]
	return b, ok
}

// Counts reports the size of every collection, for /admin/status.
func (m *Memory) Counts() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int{
		"brands":        len(m.brands),
		"categories":    len(m.categories),
		"subCategories": len(m.subs),
		"colors":        len(m.colors),
		"products":      len(m.products),
		"users":         len(m.users),
	}
}

func page[T any](all []T, number, size int) []T {
	if size <= 0 {
		return all
	}
	if number <= 0 {
		number = 1
	}
	start := (number - 1) * size
	if start >= len(all) {
		return []T{}
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
