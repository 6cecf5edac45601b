package seeders

import (
	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/shopspring/decimal"
)

var demoSizes = []string{"48", "50", "52", "54", "56"}

type demoProduct struct {
	nameTR, nameEN string
	descTR, descEN string
	fabric, ret    string
	price          int64
	category       string
	stock          int
	images         []string
}

var demoCatalog = []demoProduct{
	{
		nameTR:   "Siyah Yün Karışımlı Kaban",
		nameEN:   "Black Wool Blend Coat",
		descTR:   "İtalyan yünü karışımlı, kış ayları için ideal, şık ve sofistike uzun kaban. Geniş kırlangıç yaka detayı.",
		descEN:   "Italian wool blend, ideal for winter, stylish and sophisticated long coat.",
		fabric:   "%70 Yün, %30 Polyamid. Kuru temizleme önerilir.",
		ret:      "14 gün içinde ücretsiz iade ve değişim garantisi.",
		price:    8500,
		category: "Kaban",
		stock:    50,
		images:   []string{"/images/ACE007261066SYH_20.jpg", "/images/ACE007261066SYH_23.jpg", "/images/ACE007261066SYH_25.jpg"},
	},
	{
		nameTR:   "Klasik Siyah Kaban",
		nameEN:   "Classic Black Coat",
		descTR:   "Minimalist tasarım, her kombinle uyumlu klasik kesim.",
		descEN:   "Minimalist design, classic cut compatible with every outfit.",
		fabric:   "%60 Yün, %40 Viskoz. Sadece kuru temizleme.",
		ret:      "Kullanılmamış ürünlerde 30 gün değişim hakkı.",
		price:    7200,
		category: "Kaban",
		stock:    45,
		images:   []string{"/images/ACE007261066SYH_23.jpg", "/images/ACE007261066SYH_26.jpg"},
	},
	{
		nameTR:   "Lacivert Slim Fit Kaban",
		nameEN:   "Navy Blue Slim Fit Coat",
		descTR:   "Vücuda oturan kesim, modern ve dinamik görünüm.",
		descEN:   "Slim fit, modern and dynamic look.",
		fabric:   "%80 Yün, %20 Kaşmir. Hassas kullanım.",
		ret:      "14 gün içinde iade.",
		price:    7900,
		category: "Kaban",
		stock:    30,
		images:   []string{"/images/ACE007261066SYH_25.jpg", "/images/ACE007261066SYH_20.jpg"},
	},
	{
		nameTR:   "Haki Şişme Mont",
		nameEN:   "Khaki Puffer Jacket",
		descTR:   "Su geçirmez kumaş, kaz tüyü dolgulu, maksimum sıcaklık.",
		descEN:   "Waterproof fabric, goose down filled, maximum warmth.",
		fabric:   "%100 Polyester, Kaz Tüyü Dolgu.",
		ret:      "Etiketi koparılmamış ürünlerde iade.",
		price:    6500,
		category: "Mont",
		stock:    60,
		images:   []string{"/images/ACE007261047SYH_13.jpg", "/images/ACE007261047SYH_14.jpg"},
	},
	{
		nameTR:   "Siyah Kapüşonlu Mont",
		nameEN:   "Black Hooded Puffer",
		descTR:   "Çıkarılabilir kapüşon, fonksiyonel cepler ve rahat kesim.",
		descEN:   "Detachable hood, functional pockets and comfortable fit.",
		fabric:   "Teknolojik su itici kumaş.",
		ret:      "Yurtiçi Kargo ile ücretsiz iade.",
		price:    6800,
		category: "Mont",
		stock:    55,
		images:   []string{"/images/ACE007261047SYH_14.jpg", "/images/ACE007261047SYH_15.jpg", "/images/ACE007261047SYH_9.jpg"},
	},
}

// DemoProducts builds fresh, unsaved copies of the demo catalog. Each product
// gets sizes 48 to 56 with its stock spread evenly across them.
func DemoProducts() []models.Product {
	products := make([]models.Product, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		images := make([]models.ProductImage, len(d.images))
		for i, url := range d.images {
			images[i] = models.ProductImage{ImageURL: url}
		}
		sizes := make([]models.ProductSize, len(demoSizes))
		for i, s := range demoSizes {
			sizes[i] = models.ProductSize{Size: s, Stock: d.stock / len(demoSizes)}
		}

		products = append(products, models.Product{
			NameTR:        d.nameTR,
			NameEN:        d.nameEN,
			DescriptionTR: d.descTR,
			DescriptionEN: d.descEN,
			FabricInfo:    d.fabric,
			ReturnInfo:    d.ret,
			Price:         decimal.NewFromInt(d.price),
			Category:      d.category,
			CoverImageURL: d.images[0],
			Stock:         d.stock,
			Images:        images,
			Sizes:         sizes,
		})
	}
	return products
}
