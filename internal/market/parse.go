package market

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mattgrange/winescout/constants"
)

// Selectors for the source's undocumented page structure. Everything fragile
// about the scrape is pinned here.
const (
	selResultCard     = ".card.card-lg"
	selCardName       = ".wine-card__name"
	selCardCountry    = ".wine-card__region [data-item-type='country']"
	selCardRegion     = ".wine-card__region .link-color-alt-grey"
	selCardRating     = ".average__number"
	selCardNumRatings = ".text-micro"
	selCardPrice      = ".wine-price-value"
	selFoodPairing    = "[class*='foodPairing__foodContainer'] a"
	selDetailPrice    = "span[class*='purchaseAvailabilityPPC__amount']"
	selJSONLD         = "script[type='application/ld+json']"
)

// resultCard is the raw extraction from the top search result.
type resultCard struct {
	Name       string
	DetailLink string
	Country    string
	Region     string
	Rating     string
	NumRatings string
	Price      string
}

// parseResultCard extracts the first result card. Name, link, country and
// region are required: if any is absent the card is rejected outright rather
// than returned half-filled. Rating and review count degrade to "N/A"; a
// missing price stays empty so the detail-page fallbacks get a chance.
func parseResultCard(doc *goquery.Document, baseURL string) (resultCard, bool) {
	card := doc.Find(selResultCard).First()
	if card.Length() == 0 {
		return resultCard{}, false
	}

	var out resultCard
	out.Name = strings.TrimSpace(card.Find(selCardName).Text())

	href, hrefOK := card.Find("a").First().Attr("href")
	out.Country = strings.TrimSpace(card.Find(selCardCountry).Text())
	out.Region = strings.TrimSpace(card.Find(selCardRegion).Text())
	if out.Name == "" || !hrefOK || out.Country == "" || out.Region == "" {
		return resultCard{}, false
	}
	out.DetailLink = baseURL + href

	out.Rating = textOr(card, selCardRating, constants.NotAvailable)
	out.NumRatings = constants.NotAvailable
	if micro := strings.TrimSpace(card.Find(selCardNumRatings).Text()); micro != "" {
		out.NumRatings = strings.TrimSpace(strings.SplitN(micro, " ratings", 2)[0])
	}
	out.Price = strings.TrimSpace(card.Find(selCardPrice).First().Text())
	return out, true
}

// parseFoodPairings reads the pairing labels off the detail page. Many wines
// list none; absence yields an empty slice.
func parseFoodPairings(doc *goquery.Document) []string {
	var pairings []string
	doc.Find(selFoodPairing).Each(func(_ int, s *goquery.Selection) {
		if label, ok := s.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
			pairings = append(pairings, strings.TrimSpace(label))
		}
	})
	return pairings
}

// parseDetailPrice recovers a price the result card did not show. Two
// fallbacks in order: the JSON-LD offer price, then the dedicated price
// element. Both missing means "N/A".
func parseDetailPrice(doc *goquery.Document) string {
	if p := jsonLDOfferPrice(doc); p != "" {
		return p
	}
	if p := strings.TrimSpace(doc.Find(selDetailPrice).First().Text()); p != "" {
		return p
	}
	return constants.NotAvailable
}

// jsonLDOfferPrice digs offers.price out of the embedded structured-data
// block. The price arrives as either a string or a bare number; any other
// shape yields "".
func jsonLDOfferPrice(doc *goquery.Document) string {
	raw := doc.Find(selJSONLD).First().Text()
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	var payload struct {
		Offers struct {
			Price any `json:"price"`
		} `json:"offers"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ""
	}
	switch v := payload.Offers.Price.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return FormatPrice(v)
	}
	return ""
}

func textOr(s *goquery.Selection, selector, fallback string) string {
	if t := strings.TrimSpace(s.Find(selector).First().Text()); t != "" {
		return t
	}
	return fallback
}
