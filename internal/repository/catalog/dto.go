package catalog

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/stylora/apparel-search/internal/domain/product"
)

// tagJoin separates list-valued tag fields inside a single scalar metadata
// value; the store only holds scalars.
const tagJoin = ", "

func metadataFields() []string {
	return []string{
		"id", "name", "short_description", "price", "image_url", "product_url",
		"category", "gender", "master_category", "subcategory", "season",
		"sleeve_length", "item_length", "color", "occasion_tags", "style_tags",
	}
}

// fieldsFromRecord flattens a record into hash fields. Empty values are
// skipped so absent catalog attributes stay absent in the store.
func fieldsFromRecord(rec product.Record) map[string]string {
	fields := map[string]string{
		"id":    rec.ID,
		"price": strconv.FormatFloat(rec.Price, 'f', -1, 64),
	}
	put := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}
	put("name", rec.Name)
	put("short_description", rec.ShortDescription)
	put("image_url", rec.ImageURL)
	put("product_url", rec.ProductURL)
	put("category", rec.Category)
	put("gender", rec.Gender)
	put("master_category", rec.MasterCategory)
	put("subcategory", rec.Subcategory)
	put("season", rec.Season)
	put("sleeve_length", rec.SleeveLength)
	put("item_length", rec.ItemLength)
	put("color", rec.Color)
	put("occasion_tags", strings.Join(rec.OccasionTags, tagJoin))
	put("style_tags", strings.Join(rec.StyleTags, tagJoin))
	return fields
}

// recordFromFields rebuilds a record from flat hash fields.
func recordFromFields(fields map[string]string) product.Record {
	price, _ := strconv.ParseFloat(fields["price"], 64)
	return product.Record{
		ID:               fields["id"],
		Name:             fields["name"],
		ShortDescription: fields["short_description"],
		Price:            price,
		ImageURL:         fields["image_url"],
		ProductURL:       fields["product_url"],
		Category:         fields["category"],
		Gender:           fields["gender"],
		MasterCategory:   fields["master_category"],
		Subcategory:      fields["subcategory"],
		Season:           fields["season"],
		SleeveLength:     fields["sleeve_length"],
		ItemLength:       fields["item_length"],
		Color:            fields["color"],
		OccasionTags:     splitTags(fields["occasion_tags"]),
		StyleTags:        splitTags(fields["style_tags"]),
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// vectorToBytes serializes an embedding as little-endian float32s, the
// layout FT.SEARCH expects for FLOAT32 vector fields.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
