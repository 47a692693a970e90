package cli

import (
	"fmt"
	"time"

	"property-service/internal/model"
	"property-service/pkg/config"
)

const unsplashURL = "https://images.unsplash.com/photo-%s?w=800&h=600&fit=crop"

type demoListing struct {
	propertyType    string
	title           string
	price           float64
	transactionType string
	area            float64
	description     string
	yearBuilt       int
	features        []string
	locality        string
	fullAddress     string
	pinCode         string
	display         string
	gallery         []string
}

var demoCatalog = []demoListing{
	{
		propertyType: "Apartment", title: "Luxury 3BHK Apartment in Civil Lines",
		price: 8500000, transactionType: "Sale", area: 1850, yearBuilt: 2020,
		description: "Spacious 3BHK apartment with modern amenities, located in the heart of Civil Lines. Features include modular kitchen, 3 balconies, premium flooring, and 24/7 security. Perfect for families looking for a premium lifestyle.",
		features:    []string{"Parking", "Security", "Lift", "Power Backup", "Modular Kitchen", "Balcony"},
		locality:    "Civil Lines", fullAddress: "123, Green Park Society, Civil Lines, Near DAV College", pinCode: "250001",
		display: "1600596542815-ffad4c1539a9",
		gallery: []string{"1600607687939-ce8a6c25118c", "1600607687644-c7171b42498b"},
	},
	{
		propertyType: "Villa", title: "Premium 4BHK Villa with Private Garden",
		price: 15000000, transactionType: "Sale", area: 3200, yearBuilt: 2019,
		description: "Stunning 4BHK independent villa with a beautiful private garden, modern architecture, and premium finishes. Features include a spacious living area, home office, and a rooftop terrace with city views.",
		features:    []string{"Parking", "Security", "Garden", "Power Backup", "Modular Kitchen", "Balcony", "Furnished"},
		locality:    "Raj Nagar", fullAddress: "45, Elite Villas, Raj Nagar, Near Shopping Complex", pinCode: "250002",
		display: "1600585154340-be6161a56a0c",
		gallery: []string{"1600607687920-4e2a09cf159d", "1600566753190-17f0baa2a6c3"},
	},
	{
		propertyType: "House", title: "Spacious 3BHK Independent House",
		price: 6500000, transactionType: "Sale", area: 2400, yearBuilt: 2015,
		description: "Well-maintained 3BHK independent house in a peaceful neighborhood. Features include a large living room, separate dining area, and a beautiful backyard. Ideal for families seeking comfort and privacy.",
		features:    []string{"Parking", "Security", "Garden", "Power Backup"},
		locality:    "Shastri Nagar", fullAddress: "78, Krishna Colony, Shastri Nagar, Near School", pinCode: "250003",
		display: "1600585154084-4e5fe7c39198",
		gallery: []string{"1600607687920-4e2a09cf159d"},
	},
	{
		propertyType: "Apartment", title: "Modern 2BHK Apartment for Rent",
		price: 25000, transactionType: "Rent", area: 1200, yearBuilt: 2021,
		description: "Fully furnished 2BHK apartment available for rent. Located in a prime area with excellent connectivity. Includes all modern amenities and is ready to move in. Perfect for working professionals or small families.",
		features:    []string{"Parking", "Security", "Lift", "Power Backup", "Furnished", "Modular Kitchen"},
		locality:    "Vijay Nagar", fullAddress: "12A, Sunrise Apartments, Vijay Nagar, Main Road", pinCode: "250004",
		display: "1600607688969-a5fcd326165d",
		gallery: []string{"1600607687939-ce8a6c25118c", "1600607687644-c7171b42498b"},
	},
	{
		propertyType: "Commercial", title: "Prime Commercial Space for Lease",
		price: 75000, transactionType: "Lease", area: 2500, yearBuilt: 2018,
		description: "Premium commercial space available for lease in a high-traffic area. Ideal for retail stores, showrooms, or offices. Features include ample parking, modern infrastructure, and excellent visibility.",
		features:    []string{"Parking", "Security", "Power Backup"},
		locality:    "Delhi Road", fullAddress: "Shop No. 15-20, City Mall, Delhi Road, Near Bus Stand", pinCode: "250001",
		display: "1497366216548-37526070297c",
		gallery: []string{"1497366754035-f200968a6e72"},
	},
	{
		propertyType: "Office Space", title: "Fully Furnished Office Space",
		price: 50000, transactionType: "Rent", area: 1800, yearBuilt: 2020,
		description: "Modern office space with all amenities. Perfect for startups or established businesses. Includes conference room, reception area, and individual cabins. Located in a business district with excellent connectivity.",
		features:    []string{"Parking", "Security", "Lift", "Power Backup", "Furnished"},
		locality:    "Baghpat Road", fullAddress: "3rd Floor, Business Tower, Baghpat Road, Near Railway Station", pinCode: "250002",
		display: "1497366754035-f200968a6e72",
		gallery: []string{"1497366216548-37526070297c"},
	},
	{
		propertyType: "Shop", title: "Retail Shop in Prime Location",
		price: 45000, transactionType: "Rent", area: 600, yearBuilt: 2017,
		description: "Well-located retail shop with high footfall. Ideal for fashion, electronics, or general merchandise. Features include good storage space, display area, and easy access for customers.",
		features:    []string{"Parking", "Security"},
		locality:    "Sadar Bazar", fullAddress: "Shop No. 42, Market Complex, Sadar Bazar, Main Market", pinCode: "250001",
		display: "1441986300917-64674bd600d8",
	},
	{
		propertyType: "Plot", title: "Residential Plot in Developing Area",
		price: 3500000, transactionType: "Sale", area: 1800,
		description: "Prime residential plot in a rapidly developing area. Perfect for building your dream home. All legal clearances done, ready for construction. Located near schools, hospitals, and shopping centers.",
		locality:    "Modipuram", fullAddress: "Plot No. 25, Sector 5, Modipuram, Near Highway", pinCode: "250110",
		display: "1500382017468-9049fed747ef",
	},
	{
		propertyType: "Farmhouse", title: "Luxury Farmhouse with Pool",
		price: 25000000, transactionType: "Sale", area: 5000, yearBuilt: 2016,
		description: "Exclusive farmhouse with swimming pool, landscaped gardens, and modern amenities. Perfect for weekend getaways or as a primary residence. Features include multiple bedrooms, entertainment area, and private pool.",
		features:    []string{"Parking", "Security", "Garden", "Swimming Pool", "Power Backup", "Furnished"},
		locality:    "Sardhana", fullAddress: "Farmhouse No. 7, Green Valley Estate, Sardhana Road", pinCode: "250342",
		display: "1600585154526-990dced4db0d",
		gallery: []string{"1600566753086-00f18fb6b3ea", "1600607687644-c7171b42498b"},
	},
	{
		propertyType: "Apartment", title: "Premium 4BHK Penthouse",
		price: 12000000, transactionType: "Sale", area: 2800, yearBuilt: 2022,
		description: "Luxury penthouse with panoramic city views. Features include premium finishes, private terrace, home automation, and concierge services. Located in the most prestigious building in the city.",
		features:    []string{"Parking", "Security", "Lift", "Power Backup", "Gym", "Swimming Pool", "Modular Kitchen", "Furnished", "Balcony"},
		locality:    "Civil Lines", fullAddress: "Penthouse 12A, Elite Towers, Civil Lines, Top Floor", pinCode: "250001",
		display: "1600607687939-ce8a6c25118c",
		gallery: []string{"1600607687644-c7171b42498b", "1600607688969-a5fcd326165d"},
	},
}

// demoListings builds the demo catalog. Creation times are staggered a minute
// apart so the first entry lists first.
func demoListings(site config.SiteConfig, createdBy string) []model.Property {
	now := time.Now().UTC().Truncate(time.Second)
	listings := make([]model.Property, 0, len(demoCatalog))
	for i, d := range demoCatalog {
		n := i + 1
		p := model.Property{
			PropertyType:    d.propertyType,
			Title:           d.title,
			Price:           d.price,
			TransactionType: d.transactionType,
			Area:            d.area,
			Description:     d.description,
			KeyFeatures:     append([]string{}, d.features...),
			Status:          model.PropertyActive,
			DisplayImage: model.Image{
				URL:      fmt.Sprintf(unsplashURL, d.display),
				PublicID: fmt.Sprintf("demo-property-%d-display", n),
			},
			AdditionalImages: make([]model.Image, 0, len(d.gallery)),
			Address: model.Address{
				State:       site.State,
				City:        site.City,
				Area:        d.locality,
				FullAddress: d.fullAddress,
				PinCode:     d.pinCode,
			},
			CreatedBy: createdBy,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
		if d.yearBuilt != 0 {
			year := d.yearBuilt
			p.YearBuilt = &year
		}
		for j, photo := range d.gallery {
			p.AdditionalImages = append(p.AdditionalImages, model.Image{
				URL:      fmt.Sprintf(unsplashURL, photo),
				PublicID: fmt.Sprintf("demo-property-%d-additional-%d", n, j+1),
			})
		}
		listings = append(listings, p)
	}
	return listings
}
