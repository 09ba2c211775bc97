package fakers

import (
	"math"
	"math/rand"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var statuses = []string{"active", "inactive"}
var arrivalStatuses = []string{"new_arrival", "regular"}

func CategoryFaker() *models.Category {
	name := faker.Word()
	return &models.Category{
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
	}
}

func SubCategoryFaker(category *models.Category) *models.SubCategory {
	name := faker.Word()
	return &models.SubCategory{
		CategoryID:  category.ID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
	}
}

func ProductFaker(category *models.Category, subCategory *models.SubCategory) *models.Product {
	name := faker.Name()
	price := fakePrice()

	product := &models.Product{
		Name:          name,
		Slug:          slug.Make(name + "-" + uuid.NewString()[:6]),
		Description:   faker.Paragraph(),
		Price:         decimal.NewFromFloat(price),
		Status:        statuses[rand.Intn(len(statuses))],
		ArrivalStatus: arrivalStatuses[rand.Intn(len(arrivalStatuses))],
		CategoryID:    category.ID,
		SubCategoryID: subCategory.ID,
	}

	if rand.Intn(2) == 1 {
		product.OldPrice = decimal.NullDecimal{
			Decimal: decimal.NewFromFloat(precision(price*1.25, 2)),
			Valid:   true,
		}
	}

	return product
}

func fakePrice() float64 {
	return precision(rand.Float64()*math.Pow10(rand.Intn(4)+1), rand.Intn(2)+1)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
