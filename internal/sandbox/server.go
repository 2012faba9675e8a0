// Package sandbox is a local stand-in for the store API, used for
// development and tests.
package sandbox

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storeadmin/internal/domain"
)

const maxUpload = 5 << 20

type Server struct {
	engine *gin.Engine
	mem    *Memory
	faults *Faults
}

func NewServer(mem *Memory, faults *Faults) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), faults.Middleware())
	r.MaxMultipartMemory = 8 << 20
	s := &Server{engine: r, mem: mem, faults: faults}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	r := s.engine
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/images/:name", s.image)

	admin := r.Group("/admin")
	{
		admin.POST("/inject-error", s.injectError)
		admin.POST("/reset", s.resetFaults)
		admin.GET("/status", s.status)
	}

	acc := r.Group("/Account")
	{
		acc.POST("/login", s.login)
		acc.POST("/register", s.register)
	}

	auth := s.requireToken()

	brand := r.Group("/Brand")
	{
		brand.GET("/get-brands", s.listBrands)
		brand.POST("/add-brand", auth, s.addBrand)
		brand.PUT("/update-brand", auth, s.updateBrand)
		brand.DELETE("/delete-brand", auth, s.deleteBrand)
	}

	cat := r.Group("/Category")
	{
		cat.GET("/get-categories", s.listCategories)
		cat.GET("/get-category-by-id", s.getCategory)
		cat.POST("/add-category", auth, s.addCategory)
		cat.PUT("/update-category", auth, s.updateCategory)
		cat.DELETE("/delete-category", auth, s.deleteCategory)
	}

	sub := r.Group("/SubCategory")
	{
		sub.GET("/get-sub-category", s.listSubCategories)
		sub.GET("/get-sub-category-by-category", s.listSubCategoriesByCategory)
		sub.GET("/get-sub-category-by-id", s.getSubCategory)
		sub.POST("/add-sub-category", auth, s.addSubCategory)
		sub.PUT("/update-sub-category", auth, s.updateSubCategory)
		sub.DELETE("/delete-sub-category", auth, s.deleteSubCategory)
	}

	prod := r.Group("/Product")
	{
		prod.GET("/get-products", s.listProducts)
		prod.POST("/add-product", auth, s.addProduct)
		prod.PUT("/update-product", auth, s.updateProduct)
		prod.DELETE("/delete-product", auth, s.deleteProduct)
		prod.DELETE("/delete-product-image", auth, s.deleteProductImage)
	}

	color := r.Group("/Color")
	{
		color.GET("/get-colors", s.listColors)
		color.POST("/add-color", auth, s.addColor)
		color.PUT("/update-color", auth, s.updateColor)
		color.DELETE("/delete-color", auth, s.deleteColor)
	}
}

// requireToken rejects writes without a bearer token issued by /Account/login.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer"))
		if !s.mem.ValidToken(tok) {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Envelopes

func list(c *gin.Context, data any, pageNumber, pageSize, total int) {
	totalPage := 1
	if pageSize > 0 {
		totalPage = (total + pageSize - 1) / pageSize
	}
	c.JSON(http.StatusOK, domain.ListEnvelope[any]{
		PageNumber:  pageNumber,
		PageSize:    pageSize,
		TotalPage:   totalPage,
		TotalRecord: total,
		Data:        data,
		Errors:      []string{},
		StatusCode:  http.StatusOK,
	})
}

func one(c *gin.Context, data any) {
	c.JSON(http.StatusOK, domain.Envelope[any]{Data: data, Errors: []string{}, StatusCode: http.StatusOK})
}

func fail(c *gin.Context, status int, errs ...string) {
	c.JSON(status, domain.Envelope[any]{Errors: errs, StatusCode: status})
}

func failErr(c *gin.Context, err error) {
	fail(c, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrBadCreds):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// queryID reads a positive integer query parameter, accepting either casing.
func queryID(c *gin.Context, keys ...string) (int, bool) {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			n, err := strconv.Atoi(v)
			return n, err == nil && n > 0
		}
	}
	return 0, false
}

func formInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	return n
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	if fh.Size > maxUpload {
		return domain.Upload{}, ErrInvalid
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, err
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		return domain.Upload{}, err
	}
	if len(b) > maxUpload {
		return domain.Upload{}, ErrInvalid
	}
	return domain.Upload{FileName: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Content: b}, nil
}

func formFile(c *gin.Context, key string) (*domain.Upload, error) {
	fh, err := c.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	up, err := readUpload(fh)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// Handlers: misc

func (s *Server) image(c *gin.Context) {
	b, ok := s.mem.Image(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(b), b)
}

type injectReq struct {
	Mode string `json:"mode"`
}

func (s *Server) injectError(c *gin.Context) {
	var req injectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !s.faults.Set(req.Mode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode; use normal, server_error, fail_writes or fail_reads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mode": s.faults.Mode()})
}

func (s *Server) resetFaults(c *gin.Context) {
	s.faults.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true, "mode": s.faults.Mode()})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":     s.faults.Mode(),
		"injected": s.faults.Injected(),
		"counts":   s.mem.Counts(),
	})
}

// Handlers: account

func (s *Server) login(c *gin.Context) {
	var cr domain.Credentials
	if err := c.ShouldBindJSON(&cr); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	tok, err := s.mem.Login(cr.UserName, cr.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, tok)
}

func (s *Server) register(c *gin.Context) {
	var cr domain.Credentials
	if err := c.ShouldBindJSON(&cr); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.mem.Register(cr.UserName, cr.Password); err != nil {
		failErr(c, err)
		return
	}
	one(c, "registered")
}

// Handlers: brands

func (s *Server) listBrands(c *gin.Context) {
	all := s.mem.Brands()
	list(c, all, 1, len(all), len(all))
}

func (s *Server) addBrand(c *gin.Context) {
	b, err := s.mem.AddBrand(c.Query("BrandName"))
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, b)
}

func (s *Server) updateBrand(c *gin.Context) {
	id, ok := queryID(c, "BrandId", "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.UpdateBrand(id, c.Query("BrandName")); err != nil {
		failErr(c, err)
		return
	}
	one(c, "updated")
}

func (s *Server) deleteBrand(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteBrand(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}

// Handlers: colors

func (s *Server) listColors(c *gin.Context) {
	pn, _ := strconv.Atoi(c.Query("PageNumber"))
	ps, _ := strconv.Atoi(c.Query("PageSize"))
	items, total := s.mem.Colors(c.Query("ColorName"), pn, ps)
	list(c, items, pn, ps, total)
}

func (s *Server) addColor(c *gin.Context) {
	col, err := s.mem.AddColor(c.Query("ColorName"))
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, col)
}

func (s *Server) updateColor(c *gin.Context) {
	id, ok := queryID(c, "Id", "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.UpdateColor(id, c.Query("ColorName")); err != nil {
		failErr(c, err)
		return
	}
	one(c, "updated")
}

func (s *Server) deleteColor(c *gin.Context) {
	id, ok := queryID(c, "Id", "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteColor(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}

// Handlers: categories

func (s *Server) listCategories(c *gin.Context) {
	all := s.mem.Categories()
	list(c, all, 1, len(all), len(all))
}

func (s *Server) getCategory(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	cat, err := s.mem.Category(id)
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, cat)
}

func (s *Server) addCategory(c *gin.Context) {
	img, err := formFile(c, "CategoryImage")
	if err != nil {
		failErr(c, err)
		return
	}
	cat, err := s.mem.AddCategory(c.PostForm("CategoryName"), img)
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, cat)
}

func (s *Server) updateCategory(c *gin.Context) {
	id := formInt(c, "Id")
	if id <= 0 {
		fail(c, http.StatusBadRequest, "Id: required")
		return
	}
	img, err := formFile(c, "CategoryImage")
	if err != nil {
		failErr(c, err)
		return
	}
	if err := s.mem.UpdateCategory(id, c.PostForm("CategoryName"), img); err != nil {
		failErr(c, err)
		return
	}
	one(c, "updated")
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteCategory(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}

// Handlers: sub-categories

func (s *Server) listSubCategories(c *gin.Context) {
	all := s.mem.SubCategories(0)
	list(c, all, 1, len(all), len(all))
}

func (s *Server) listSubCategoriesByCategory(c *gin.Context) {
	id, ok := queryID(c, "categoryId", "CategoryId")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid categoryId")
		return
	}
	all := s.mem.SubCategories(id)
	list(c, all, 1, len(all), len(all))
}

func (s *Server) getSubCategory(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	sub, err := s.mem.SubCategory(id)
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, sub)
}

func (s *Server) addSubCategory(c *gin.Context) {
	sub, err := s.mem.AddSubCategory(c.PostForm("SubCategoryName"), formInt(c, "CategoryId"))
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, sub)
}

func (s *Server) updateSubCategory(c *gin.Context) {
	id := formInt(c, "Id")
	if id <= 0 {
		fail(c, http.StatusBadRequest, "Id: required")
		return
	}
	if err := s.mem.UpdateSubCategory(id, c.PostForm("SubCategoryName")); err != nil {
		failErr(c, err)
		return
	}
	one(c, "updated")
}

func (s *Server) deleteSubCategory(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteSubCategory(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}

// Handlers: products

func queryDecimal(c *gin.Context, key string) *decimal.Decimal {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

func (s *Server) listProducts(c *gin.Context) {
	atoi := func(k string) int { n, _ := strconv.Atoi(c.Query(k)); return n }
	f := ProductFilter{
		Name:          c.Query("ProductName"),
		BrandID:       atoi("BrandId"),
		ColorID:       atoi("ColorId"),
		CategoryID:    atoi("CategoryId"),
		SubCategoryID: atoi("SubcategoryId"),
		MinPrice:      queryDecimal(c, "MinPrice"),
		MaxPrice:      queryDecimal(c, "MaxPrice"),
		PageNumber:    atoi("PageNumber"),
		PageSize:      atoi("PageSize"),
	}
	pg, total := s.mem.Products(f)
	list(c, pg, f.PageNumber, f.PageSize, total)
}

// productInput reads the multipart product form. Field problems are
// collected so the response lists all of them at once.
func productInput(c *gin.Context) (domain.ProductInput, []string, error) {
	var problems []string
	in := domain.ProductInput{
		Name:          c.PostForm("ProductName"),
		Description:   c.PostForm("Description"),
		Code:          c.PostForm("Code"),
		Quantity:      formInt(c, "Quantity"),
		BrandID:       formInt(c, "BrandId"),
		ColorID:       formInt(c, "ColorId"),
		SubCategoryID: formInt(c, "SubCategoryId"),
		Weight:        c.PostForm("Weight"),
		Size:          c.PostForm("Size"),
	}
	in.HasDiscount, _ = strconv.ParseBool(c.PostForm("HasDiscount"))
	price, err := decimal.NewFromString(c.PostForm("Price"))
	if err != nil {
		problems = append(problems, "Price: invalid")
	}
	in.Price = price
	if v := c.PostForm("DiscountPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			problems = append(problems, "DiscountPrice: invalid")
		}
		in.DiscountPrice = &d
	}
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "ProductName: required")
	}
	if strings.TrimSpace(in.Code) == "" {
		problems = append(problems, "Code: required")
	}
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["Images"] {
			up, err := readUpload(fh)
			if err != nil {
				return in, nil, err
			}
			in.Images = append(in.Images, up)
		}
	}
	return in, problems, nil
}

func (s *Server) addProduct(c *gin.Context) {
	in, problems, err := productInput(c)
	if err != nil {
		failErr(c, err)
		return
	}
	if len(problems) > 0 {
		fail(c, http.StatusBadRequest, problems...)
		return
	}
	p, err := s.mem.AddProduct(in)
	if err != nil {
		failErr(c, err)
		return
	}
	one(c, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	in, problems, err := productInput(c)
	if err != nil {
		failErr(c, err)
		return
	}
	if len(problems) > 0 {
		fail(c, http.StatusBadRequest, problems...)
		return
	}
	if err := s.mem.UpdateProduct(id, in); err != nil {
		failErr(c, err)
		return
	}
	one(c, "updated")
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteProduct(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}

func (s *Server) deleteProductImage(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.mem.DeleteProductImage(id); err != nil {
		failErr(c, err)
		return
	}
	one(c, "deleted")
}
