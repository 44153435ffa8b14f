package transport

import "time"

// Packages

type CreatePackageRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Slug        string   `json:"slug" validate:"required,min=2,max=200,slug"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       *float64 `json:"price" validate:"required,min=0"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Image       string   `json:"image" validate:"required,url"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,required"`
	Destination string   `json:"destination" validate:"required,min=2"`
	Country     string   `json:"country" validate:"required,min=2"`
	Amenities   []string `json:"amenities,omitempty"`
	MaxPeople   int      `json:"maxPeople" validate:"required,min=1"`
	Featured    bool     `json:"featured,omitempty"`
}

type UpdatePackageRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Slug        *string   `json:"slug,omitempty" validate:"omitempty,min=2,max=200,slug"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Duration    *int      `json:"duration,omitempty" validate:"omitempty,min=1"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,url"`
	Images      *[]string `json:"images,omitempty"`
	Destination *string   `json:"destination,omitempty" validate:"omitempty,min=2"`
	Country     *string   `json:"country,omitempty" validate:"omitempty,min=2"`
	Amenities   *[]string `json:"amenities,omitempty"`
	MaxPeople   *int      `json:"maxPeople,omitempty" validate:"omitempty,min=1"`
	Featured    *bool     `json:"featured,omitempty"`
}

type ListPackagesRequest struct {
	Destination string   `form:"destination" validate:"omitempty,max=100"`
	MinPrice    *float64 `form:"minPrice" validate:"omitempty,min=0"`
	MaxPrice    *float64 `form:"maxPrice" validate:"omitempty,min=0"`
	Featured    *bool    `form:"featured"`
	Limit       int64    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type PackageResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Duration     int       `json:"duration"`
	Image        string    `json:"image"`
	Images       []string  `json:"images"`
	Destination  string    `json:"destination"`
	Country      string    `json:"country"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviewsCount"`
	Amenities    []string  `json:"amenities"`
	MaxPeople    int       `json:"maxPeople"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Destinations

type CreateDestinationRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Slug        string `json:"slug" validate:"required,min=2,max=200,slug"`
	Country     string `json:"country" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
	Image       string `json:"image" validate:"required,url"`
	Featured    bool   `json:"featured,omitempty"`
}

type UpdateDestinationRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=2,max=200,slug"`
	Country     *string `json:"country,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=10"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Featured    *bool   `json:"featured,omitempty"`
}

type DestinationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Blog

type CreateBlogPostRequest struct {
	Title   string   `json:"title" validate:"required,min=2,max=200"`
	Slug    string   `json:"slug" validate:"required,min=2,max=200,slug"`
	Content string   `json:"content" validate:"required,min=10"`
	Excerpt string   `json:"excerpt" validate:"required,min=2,max=500"`
	Image   string   `json:"image" validate:"required,url"`
	Author  string   `json:"author" validate:"required,min=2,max=100"`
	Tags    []string `json:"tags,omitempty"`
}

type BlogPostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// Uploads

type PresignUploadRequest struct {
	Folder      string `json:"folder" validate:"required,oneof=packages destinations blog"`
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Mutation results

type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
