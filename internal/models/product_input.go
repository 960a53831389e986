package models

// ProductCreateInput is the request body for creating a product. Its validate
// tags are the authoritative rule table; the numeric bounds match the
// constants in product.go.
type ProductCreateInput struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Description   string   `json:"description" validate:"required,min=10,max=1000"`
	Price         float64  `json:"price" validate:"required,gt=0,lt=1000000"`
	Category      string   `json:"category" validate:"omitempty,min=2,max=50"`
	Multimedia    []string `json:"multimedia" validate:"omitempty,max=5,dive,max=255"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0,lte=100000"`
}

// ToProduct builds the entity, applying defaults for the optional fields.
func (in *ProductCreateInput) ToProduct() *Product {
	stock := 0
	if in.StockQuantity != nil {
		stock = *in.StockQuantity
	}
	return &Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		Multimedia:    URLList(in.Multimedia),
		StockQuantity: stock,
	}
}

// ProductUpdateInput carries a partial update. Nil fields were not supplied
// and leave the stored value untouched.
type ProductUpdateInput struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description   *string  `json:"description" validate:"omitempty,min=10,max=1000"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0,lt=1000000"`
	Category      *string  `json:"category" validate:"omitempty,min=2,max=50"`
	Multimedia    []string `json:"multimedia" validate:"omitempty,max=5,dive,max=255"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0,lte=100000"`
}

// Fields returns only the supplied values, keyed by column name.
func (in *ProductUpdateInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Multimedia != nil {
		fields["multimedia"] = URLList(in.Multimedia)
	}
	if in.StockQuantity != nil {
		fields["stock_quantity"] = *in.StockQuantity
	}
	return fields
}
