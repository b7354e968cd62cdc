package domain

// Advert is a promoted offer shown on the public site.
type Advert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       string `json:"price,omitempty"`
	Active      bool   `json:"active"`
}

type GalleryImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption,omitempty"`
}

// ServiceContent is a CMS entry describing an offered service.
type ServiceContent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Price       string `json:"price,omitempty"`
	ShowPrice   bool   `json:"showPrice"`
}
