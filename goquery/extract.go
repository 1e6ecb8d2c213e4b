package goquery

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// Selector fallthrough lists for the shared candidate field extraction.
// Custom selectors from the request are always tried first.
var (
	nameSelectors        = []string{"h1", "h2", "h3", ".product-title", ".product-name", `[itemprop="name"]`, ".title", ".name"}
	descriptionSelectors = []string{`[itemprop="description"]`, ".product-description", ".description", ".short-description", "p"}
	priceSelectors       = []string{`[itemprop="price"]`, ".price", ".product-price", ".current-price", ".amount", "[data-price]", ".pret"}
	oldPriceSelectors    = []string{".old-price", ".regular-price", ".compare-at-price", "del", "s"}
	categorySelectors    = []string{`[itemprop="category"]`, ".category", ".breadcrumb li", ".breadcrumbs li"}
	brandSelectors       = []string{`[itemprop="brand"]`, ".brand", ".product-brand", ".manufacturer"}
	modelSelectors       = []string{`[itemprop="model"]`, ".model", ".product-model"}
	skuSelectors         = []string{`[itemprop="sku"]`, ".sku", "[data-sku]", ".product-sku"}
	sellerSelectors      = []string{`[itemprop="seller"]`, ".seller", ".sold-by", ".vendor"}
	specContainers       = []string{".specifications", ".specs", ".product-attributes", ".caracteristici", ".product-specs", "table"}
	featureContainers    = []string{".features", ".product-features", ".benefits", ".avantaje", ".feature-list"}
)

// extractCandidate builds a Product from a container element using the
// shared sub-extractors. Returns nil when the candidate fails the name
// gate; strategies simply skip such elements.
func extractCandidate(sel *goquery.Selection, page *pagelens.Page, source string, confidence float64) *pagelens.Product {
	name := extractName(sel, page)
	if n := utf8.RuneCountInString(name); n < pagelens.MinProductNameLen || n > pagelens.MaxProductNameLen {
		return nil
	}

	text := cleanText(sel.Text())
	price, original, currency := extractPrice(sel)

	p := &pagelens.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   extractDescription(sel, page, name),
		Price:         price,
		OriginalPrice: original,
		Currency:      currency,
		Category:      extractCategory(sel, page, text),
		Brand:         extractFirst(sel, page, "brand", brandSelectors),
		Model:         extractFirst(sel, page, "model", modelSelectors),
		SKU:           extractFirst(sel, page, "sku", skuSelectors),
		Seller:        extractFirst(sel, page, "seller", sellerSelectors),
		GTIN:          itempropText(sel, "gtin13", "gtin"),
		UPC:           itempropText(sel, "upc"),
		EAN:           itempropText(sel, "ean"),
		MPN:           itempropText(sel, "mpn"),

		Images: extractImages(sel, page),
		Videos: extractVideos(sel, page),

		Specifications: extractSpecifications(sel),
		Features:       extractFeatures(sel),
		Colors:         scanVocabulary(text, knownColors),
		Sizes:          extractSizes(sel),
		Dimensions:     extractDimensions(text),
		Materials:      scanVocabulary(text, knownMaterials),

		Reviews:      extractReviews(sel, text),
		Promotions:   extractPromotions(text),
		DeliveryInfo: extractDelivery(text),

		URL:       extractProductURL(sel, page),
		Source:    source,
		ScrapedAt: time.Now().UTC(),

		ConfidenceScore: confidence,
		Metadata: pagelens.ProductMetadata{
			ScrapingMethod: source,
			Platform:       string(page.Platform),
		},
	}

	availability, stock := extractAvailability(text)
	p.Availability = availability
	p.StockStatus = stock
	if p.URL == "" {
		p.URL = page.URL
	}
	return p
}

// customSelector returns the caller-provided selector for a field, if any.
func customSelector(page *pagelens.Page, field string) string {
	if page.CustomSelectors == nil {
		return ""
	}
	return page.CustomSelectors[field]
}

// extractName prefers heading and title-class selectors, then falls back
// to the element's own text with price tokens and boilerplate stripped.
func extractName(sel *goquery.Selection, page *pagelens.Page) string {
	selectors := nameSelectors
	if cs := customSelector(page, "name"); cs != "" {
		selectors = append([]string{cs}, selectors...)
	}

	for _, s := range selectors {
		if found := cleanText(sel.Find(s).First().Text()); found != "" {
			return truncate(found, pagelens.MaxProductNameLen)
		}
	}

	// Fallback: filtered element text, first meaningful line.
	text := priceRe.ReplaceAllString(sel.Text(), " ")
	for _, line := range strings.Split(text, "\n") {
		line = cleanText(line)
		if utf8.RuneCountInString(line) >= pagelens.MinProductNameLen {
			return truncate(line, pagelens.MaxProductNameLen)
		}
	}
	return ""
}

func extractDescription(sel *goquery.Selection, page *pagelens.Page, name string) string {
	selectors := descriptionSelectors
	if cs := customSelector(page, "description"); cs != "" {
		selectors = append([]string{cs}, selectors...)
	}

	for _, s := range selectors {
		found := cleanText(sel.Find(s).First().Text())
		// A description identical to the name carries no information.
		if found != "" && found != name {
			return truncate(found, 2000)
		}
	}
	return ""
}

// extractPrice returns the first selector match containing a decimal-like
// price token, plus the struck-through original price and the currency.
func extractPrice(sel *goquery.Selection) (price, original, currency string) {
	find := func(selectors []string) string {
		for _, s := range selectors {
			var match string
			sel.Find(s).EachWithBreak(func(_ int, el *goquery.Selection) bool {
				candidate := el.AttrOr("content", "")
				if candidate == "" {
					candidate = cleanText(el.Text())
				}
				if m := priceRe.FindString(candidate); m != "" {
					match = cleanText(m)
					return false
				}
				return true
			})
			if match != "" {
				return match
			}
		}
		return ""
	}

	price = find(priceSelectors)
	if price == "" {
		price = cleanText(priceRe.FindString(sel.Text()))
	}
	original = find(oldPriceSelectors)

	if m := currencyRe.FindString(price); m != "" {
		currency = currencyCodes[strings.ToLower(m)]
	}
	return price, original, currency
}

// extractCategory tries explicit selectors first, then matches the
// candidate text against the fixed category taxonomy.
func extractCategory(sel *goquery.Selection, page *pagelens.Page, text string) string {
	selectors := categorySelectors
	if cs := customSelector(page, "category"); cs != "" {
		selectors = append([]string{cs}, selectors...)
	}

	for _, s := range selectors {
		if found := cleanText(sel.Find(s).First().Text()); found != "" {
			return truncate(found, 100)
		}
	}

	for _, entry := range categoryTaxonomy {
		if entry.Pattern.MatchString(text) {
			return entry.Name
		}
	}
	return ""
}

// extractImages collects all img descendants, excluding placeholder and
// loading sources, resolved to absolute URLs.
func extractImages(sel *goquery.Selection, page *pagelens.Page) []string {
	var images []string
	seen := make(map[string]bool)

	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := firstAttr(img, "src", "data-src", "data-lazy-src", "data-original")
		if src == "" || placeholderImageRe.MatchString(src) {
			return
		}
		resolved := resolveURL(page.URL, src)
		if !seen[resolved] {
			seen[resolved] = true
			images = append(images, resolved)
		}
	})
	return images
}

func extractVideos(sel *goquery.Selection, page *pagelens.Page) []string {
	var videos []string
	seen := make(map[string]bool)

	add := func(src string) {
		if src == "" {
			return
		}
		resolved := resolveURL(page.URL, src)
		if !seen[resolved] {
			seen[resolved] = true
			videos = append(videos, resolved)
		}
	}

	sel.Find("video").Each(func(_ int, v *goquery.Selection) {
		add(firstAttr(v, "src"))
		v.Find("source").Each(func(_ int, s *goquery.Selection) {
			add(firstAttr(s, "src"))
		})
	})
	sel.Find("iframe").Each(func(_ int, f *goquery.Selection) {
		src := firstAttr(f, "src")
		if strings.Contains(src, "youtube") || strings.Contains(src, "vimeo") {
			add(src)
		}
	})
	return videos
}

// extractSpecifications parses key:value table rows and "label: value"
// list items inside specification containers.
func extractSpecifications(sel *goquery.Selection) map[string]string {
	specs := make(map[string]string)

	addRow := func(key, value string) {
		key, value = cleanText(key), cleanText(value)
		if key == "" || value == "" || len(key) > 60 {
			return
		}
		if _, exists := specs[key]; !exists {
			specs[key] = truncate(value, 200)
		}
	}

	for _, container := range specContainers {
		sel.Find(container).Each(func(_ int, c *goquery.Selection) {
			c.Find("tr").Each(func(_ int, row *goquery.Selection) {
				cells := row.Find("th, td")
				if cells.Length() >= 2 {
					addRow(cells.Eq(0).Text(), cells.Eq(1).Text())
				}
			})
			c.Find("dt").Each(func(i int, dt *goquery.Selection) {
				dd := dt.NextFiltered("dd")
				if dd.Length() > 0 {
					addRow(dt.Text(), dd.Text())
				}
			})
			c.Find("li").Each(func(_ int, li *goquery.Selection) {
				if m := specRowRe.FindStringSubmatch(li.Text()); m != nil {
					addRow(m[1], m[2])
				}
			})
		})
		if len(specs) > 0 {
			break
		}
	}

	if len(specs) == 0 {
		return nil
	}
	return specs
}

// extractFeatures collects list items inside feature/benefit containers.
func extractFeatures(sel *goquery.Selection) []string {
	var features []string
	seen := make(map[string]bool)

	for _, container := range featureContainers {
		sel.Find(container).Find("li").Each(func(_ int, li *goquery.Selection) {
			text := cleanText(li.Text())
			if text == "" || len(text) > 300 || seen[text] {
				return
			}
			seen[text] = true
			features = append(features, text)
		})
		if len(features) > 0 {
			break
		}
	}
	return features
}

// extractAvailability matches the candidate text against the localized
// stock-status vocabularies.
func extractAvailability(text string) (availability, stockStatus string) {
	switch {
	case outStockRe.MatchString(text):
		return cleanText(outStockRe.FindString(text)), "out_of_stock"
	case preorderRe.MatchString(text):
		return cleanText(preorderRe.FindString(text)), "preorder"
	case inStockRe.MatchString(text):
		return cleanText(inStockRe.FindString(text)), "in_stock"
	}
	return "", ""
}

func extractFirst(sel *goquery.Selection, page *pagelens.Page, field string, selectors []string) string {
	if cs := customSelector(page, field); cs != "" {
		selectors = append([]string{cs}, selectors...)
	}
	for _, s := range selectors {
		el := sel.Find(s).First()
		if v := firstAttr(el, "content"); v != "" {
			return truncate(v, 200)
		}
		if found := cleanText(el.Text()); found != "" {
			return truncate(found, 200)
		}
	}
	return ""
}

func itempropText(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		el := sel.Find(`[itemprop="` + name + `"]`).First()
		if v := firstAttr(el, "content"); v != "" {
			return v
		}
		if v := cleanText(el.Text()); v != "" {
			return v
		}
	}
	return ""
}

func extractSizes(sel *goquery.Selection) []string {
	var sizes []string
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.ToUpper(cleanText(s))
		if s == "" || seen[s] || !sizeTokenRe.MatchString(s) {
			return
		}
		seen[s] = true
		sizes = append(sizes, s)
	}

	sel.Find(`select[name*="size"] option, select[id*="size"] option, .size-option, .size-selector li, [data-size]`).
		Each(func(_ int, el *goquery.Selection) {
			if v := firstAttr(el, "data-size"); v != "" {
				add(v)
				return
			}
			add(el.Text())
		})
	return sizes
}

// scanVocabulary returns the vocabulary entries found as whole words in
// the text, preserving vocabulary order.
func scanVocabulary(text string, vocabulary []string) []string {
	lower := " " + strings.ToLower(text) + " "
	var found []string
	for _, word := range vocabulary {
		if strings.Contains(lower, " "+word+" ") || strings.Contains(lower, " "+word+",") {
			found = append(found, word)
		}
	}
	return found
}

func extractDimensions(text string) *pagelens.Dimensions {
	m := dimensionsRe.FindStringSubmatch(text)
	w := weightRe.FindStringSubmatch(text)
	if m == nil && w == nil {
		return nil
	}

	d := &pagelens.Dimensions{}
	if m != nil {
		unit := m[4]
		d.Length = m[1] + " " + unit
		d.Width = m[2] + " " + unit
		d.Height = m[3] + " " + unit
		d.Raw = cleanText(m[0])
	}
	if w != nil {
		d.Weight = w[1] + " " + w[2]
	}
	return d
}

func extractReviews(sel *goquery.Selection, text string) *pagelens.ReviewSummary {
	r := &pagelens.ReviewSummary{}

	if v := itempropText(sel, "ratingValue"); v != "" {
		r.Rating = v
	} else if m := ratingRe.FindStringSubmatch(text); m != nil {
		r.Rating = m[1]
	}
	if v := itempropText(sel, "reviewCount", "ratingCount"); v != "" {
		r.Count, _ = strconv.Atoi(v)
	} else if m := reviewCountRe.FindStringSubmatch(text); m != nil {
		r.Count, _ = strconv.Atoi(m[1])
	}

	if r.Rating == "" && r.Count == 0 {
		return nil
	}
	return r
}

func extractPromotions(text string) []string {
	matches := promotionRe.FindAllString(text, 5)
	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		m = strings.ToLower(cleanText(m))
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

func extractDelivery(text string) string {
	return truncate(cleanText(deliveryRe.FindString(text)), 200)
}

// extractProductURL returns the candidate's own detail page link: the
// container's anchor if it is one, else its first product-looking
// descendant anchor, else its first anchor.
func extractProductURL(sel *goquery.Selection, page *pagelens.Page) string {
	if goquery.NodeName(sel) == "a" {
		if href := firstAttr(sel, "href"); href != "" {
			return resolveURL(page.URL, href)
		}
	}

	var href string
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, _ := a.Attr("href")
		if productURLRe.MatchString(h) {
			href = h
			return false
		}
		if href == "" {
			href = h
		}
		return true
	})
	if href == "" {
		return ""
	}
	return resolveURL(page.URL, href)
}

// findProductContainer walks up from el to the nearest ancestor that
// carries product markup, up to maxHops levels. Returns el itself when no
// better container is found.
func findProductContainer(el *goquery.Selection, maxHops int) *goquery.Selection {
	current := el
	for i := 0; i < maxHops; i++ {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		if looksLikeProductContainer(parent) {
			return parent
		}
		current = parent
	}
	return el
}

// looksLikeProductContainer reports whether the element's class, id, or
// itemtype suggests a product container.
func looksLikeProductContainer(sel *goquery.Selection) bool {
	if itemType, ok := sel.Attr("itemtype"); ok && strings.Contains(strings.ToLower(itemType), "product") {
		return true
	}
	marker := strings.ToLower(sel.AttrOr("class", "") + " " + sel.AttrOr("id", ""))
	return strings.Contains(marker, "product") ||
		strings.Contains(marker, "produs") ||
		strings.Contains(marker, "item")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
