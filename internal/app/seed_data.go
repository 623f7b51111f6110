package app

import "hotel_site/internal/domain"

// DefaultBundles are the launch hotels written by `seed` when no catalog
// slugs are configured.
func DefaultBundles() []domain.HotelBundle {
	return []domain.HotelBundle{
		{
			Hotel: domain.Hotel{
				Name:     "Orchid Hotel Mumbai Vile Parle",
				Slug:     "mumbai-vile-parle",
				Tagline:  "Asia's First Certified Eco-Friendly 5 Star Hotel",
				Address:  "70-C, Nehru Road,\nVile Parle (East),\nMumbai - 400099",
				Phone:    "+91 22 2616 4000\n+91 98200 12345 (24x7)",
				Email:    "reservations.mumbai@orchidshotel.com",
				IsActive: true,
			},
			MainInfo: &domain.MainInfo{
				Title:           "Asia's First Certified Eco-Friendly 5 STAR",
				HighlightedText: "Hotel Near Mumbai Airport",
				Description: "Experience The Orchid Hotel Mumbai Vile Parle, a top 5-star hotel near Mumbai Airport T1 & T2. " +
					"Perfect for transit, business trips, and family stays, we offer luxury rooms, rooftop dining, banquet halls, " +
					"and elegant wedding venues. Located minutes from Juhu Beach, BKC, and Bandra-Worli Sea Link, our eco-friendly " +
					"hotel combines sustainable luxury with airport convenience. Book your stay near Mumbai Domestic Airport now!",
			},
		},
		{
			Hotel: domain.Hotel{
				Name:     "Orchid Hotel Delhi Connaught Place",
				Slug:     "delhi-connaught-place",
				Tagline:  "Luxury Hospitality in the Heart of Delhi",
				Address:  "15, Parliament Street,\nConnaught Place,\nNew Delhi - 110001",
				Phone:    "+91 11 2345 6789\n+91 98765 43210 (24x7)",
				Email:    "reservations.delhi@orchidshotel.com",
				IsActive: true,
			},
			MainInfo: &domain.MainInfo{
				Title:           "Premium 5-Star Luxury",
				HighlightedText: "In the Heart of Delhi",
				Description: "Experience unparalleled luxury at Orchid Hotel Delhi, located in the prestigious Connaught Place. " +
					"Our hotel offers exquisite rooms, world-class dining, state-of-the-art banquet facilities, and impeccable service. " +
					"Perfect for business travelers and tourists alike, we provide easy access to Delhi's major attractions, " +
					"business centers, and shopping districts.",
			},
		},
	}
}
