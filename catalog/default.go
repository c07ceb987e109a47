package catalog

// DefaultTargetCompany is the brand group the insight report focuses on.
const DefaultTargetCompany = "Asterasys"

// defaultEntries is the competitive ranking used by the campaign dataset.
var defaultEntries = []Entry{
	{DeviceName: "써마지", Category: RF, Rank: 1, Company: "썸"},
	{DeviceName: "인모드", Category: RF, Rank: 2, Company: "인바이오"},
	{DeviceName: "쿨페이즈", Category: RF, Rank: 3, Company: "Asterasys"},
	{DeviceName: "덴서티", Category: RF, Rank: 4, Company: "칸델라"},
	{DeviceName: "올리지오", Category: RF, Rank: 5, Company: "엘렉타"},
	{DeviceName: "튜페이스", Category: RF, Rank: 6, Company: "알마"},
	{DeviceName: "세르프", Category: RF, Rank: 7, Company: "클레시스"},
	{DeviceName: "텐써마", Category: RF, Rank: 8, Company: "휴온스"},
	{DeviceName: "볼뉴머", Category: RF, Rank: 9, Company: "클래시테크"},

	{DeviceName: "울쎄라", Category: HIFU, Rank: 1, Company: "머츠"},
	{DeviceName: "슈링크", Category: HIFU, Rank: 2, Company: "허쉬메드"},
	{DeviceName: "쿨소닉", Category: HIFU, Rank: 3, Company: "Asterasys"},
	{DeviceName: "리프테라", Category: HIFU, Rank: 4, Company: "Asterasys"},
	{DeviceName: "리니어지", Category: HIFU, Rank: 5, Company: "클래시테크"},
	{DeviceName: "브이로", Category: HIFU, Rank: 6, Company: "클래시테크"},
	{DeviceName: "텐쎄라", Category: HIFU, Rank: 7, Company: "휴온스"},
	{DeviceName: "튠라이너", Category: HIFU, Rank: 8, Company: "알마"},
	{DeviceName: "리니어펌", Category: HIFU, Rank: 9, Company: "클래시테크"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic("catalog: built-in entries are invalid: " + err.Error())
	}
	return c
}
