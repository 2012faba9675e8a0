package handlers

import (
	"storeadmin/internal/apiclient"
	"storeadmin/internal/config"
	"storeadmin/internal/repos"
	"storeadmin/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler        *AuthHandler
	AdminHandler       *AdminHandler
	BrandHandler       *BrandHandler
	CategoryHandler    *CategoryHandler
	SubCategoryHandler *SubCategoryHandler
	ProductHandler     *ProductHandler
	ColorHandler       *ColorHandler
}

// NewDeps wires one service per store around a shared api client.
func NewDeps(cfg config.Config, client *apiclient.Client, sessions repos.SessionRepo) *Deps {
	authSvc := services.NewAuthService(client, sessions)
	brandSvc := services.NewBrandService(client)
	catSvc := services.NewCategoryService(client)
	subSvc := services.NewSubCategoryService(client)
	prodSvc := services.NewProductService(client, cfg.ProductPageSize)
	colorSvc := services.NewColorService(client, cfg.ColorPageSize)

	return &Deps{
		Auth:        authSvc,
		AuthHandler: &AuthHandler{Auth: authSvc},
		AdminHandler: &AdminHandler{
			Brands: brandSvc, Categories: catSvc, SubCategories: subSvc, Products: prodSvc, Colors: colorSvc,
		},
		BrandHandler:       &BrandHandler{Svc: brandSvc},
		CategoryHandler:    &CategoryHandler{Svc: catSvc, Subs: subSvc},
		SubCategoryHandler: &SubCategoryHandler{Svc: subSvc},
		ProductHandler:     &ProductHandler{Svc: prodSvc, Categories: catSvc, SubCategories: subSvc},
		ColorHandler:       &ColorHandler{Svc: colorSvc},
	}
}
