package classifier

// keywordTable はキーワードからカテゴリ表示名への対応表。
// 英語とアラビア語のキーワードを同一の表示名（アラビア語）に対応させる多対一の表。
// キーは小文字化済みのトークンと完全一致で照合する。
var keywordTable = map[string]string{
	"tech":        "التكنولوجيا",
	"technology":  "التكنولوجيا",
	"التكنولوجيا": "التكنولوجيا",
	"تقنية":       "التكنولوجيا",
	"programming": "التكنولوجيا",
	"برمجة":       "التكنولوجيا",
	"code":        "التكنولوجيا",
	"software":    "التكنولوجيا",

	"ai":           "الذكاء الاصطناعي",
	"artificial":   "الذكاء الاصطناعي",
	"intelligence": "الذكاء الاصطناعي",
	"ذكاء":         "الذكاء الاصطناعي",
	"اصطناعي":      "الذكاء الاصطناعي",

	"machine":  "تعلم الآلة",
	"learning": "تعلم الآلة",
	"تعلم":     "تعلم الآلة",

	"health":   "الصحة",
	"صحة":      "الصحة",
	"medical":  "الصحة",
	"طبي":      "الصحة",
	"fitness":  "الصحة",
	"لياقة":    "الصحة",
	"wellness": "الصحة",

	"business":     "الأعمال",
	"أعمال":        "الأعمال",
	"تجارة":        "الأعمال",
	"startup":      "الأعمال",
	"entrepreneur": "الأعمال",
	"ريادة":        "الأعمال",

	"finance": "المالية",
	"مالية":   "المالية",
	"أموال":   "المالية",
	"money":   "المالية",

	"investment": "الاستثمار",
	"استثمار":    "الاستثمار",

	"science": "العلوم",
	"علوم":    "العلوم",

	"research": "البحوث",
	"بحوث":     "البحوث",

	"sports":   "الرياضة",
	"رياضة":    "الرياضة",
	"football": "الرياضة",
	"كرة":      "الرياضة",
	"soccer":   "الرياضة",

	"travel": "السفر",
	"سفر":    "السفر",
	"سياحة":  "السفر",

	"food":    "الطعام",
	"طعام":    "الطعام",
	"طبخ":     "الطعام",
	"cooking": "الطعام",
}

// defaultCategoryNames は一致するキーワードがない場合に使用する既定カテゴリ。
// 常に同じ3件を同じ順序で返す。
var defaultCategoryNames = []string{
	"التكنولوجيا",
	"الصحة",
	"الأعمال",
}

// Keywords はキーワード表のコピーを返す。
func Keywords() map[string]string {
	table := make(map[string]string, len(keywordTable))
	for k, v := range keywordTable {
		table[k] = v
	}
	return table
}

// DefaultCategoryNames は既定カテゴリ名のコピーを返す。
func DefaultCategoryNames() []string {
	return append([]string(nil), defaultCategoryNames...)
}
