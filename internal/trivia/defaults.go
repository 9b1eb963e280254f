package trivia

// Compiled-in default banks. The admin editor can fork any category into a
// persisted override list; these defaults remain untouched and serve as the
// fallback when no override exists.

var DefaultRiddles = []Riddle{
	{
		ID:       1,
		Kind:     RiddleText,
		Question: "ما هو الشيء الذي كلما أخذت منه كبر؟",
		Answer:   "الحفرة",
		Accepted: []string{"حفرة", "الحفره"},
		Hint:     "موجود في الأرض",
	},
	{
		ID:       2,
		Kind:     RiddleText,
		Question: "شيء يمشي ويقف وليس له أرجل، فما هو؟",
		Answer:   "الساعة",
		Accepted: []string{"ساعة", "الساعه"},
		Hint:     "تلبسه في يدك",
	},
	{
		ID:       3,
		Kind:     RiddleEmoji,
		Question: "🐑 🐺 🌿",
		Answer:   "الراعي الصالح",
		Accepted: []string{"الراعي"},
		Hint:     "مثل معروف عن الخروف الضال",
	},
	{
		ID:       4,
		Kind:     RiddleEmoji,
		Question: "🚢 🌊 🐟",
		Answer:   "يونان",
		Accepted: []string{"يونان النبي"},
		Hint:     "نبي هرب في سفينة",
	},
}

var DefaultVerses = []VerseChallenge{
	// Level 1
	{
		ID:      1,
		Level:   1,
		Kind:    VerseMissingWord,
		Text:    "الرب راعيّ فلا ____ شيء",
		Options: []string{"يعوزني", "ينقصني", "يفوتني"},
		Correct: "يعوزني",
	},
	{
		ID:      2,
		Level:   1,
		Kind:    VerseArrange,
		Words:   []string{"نور", "الرب", "وخلاصي"},
		Correct: "الرب نور وخلاصي",
	},
	{
		ID:      3,
		Level:   1,
		Kind:    VerseReference,
		Text:    "في البدء كان الكلمة",
		Options: []string{"يوحنا 1", "متى 5", "مزمور 23"},
		Correct: "يوحنا 1",
	},
	// Level 2
	{
		ID:      4,
		Level:   2,
		Kind:    VerseMissingWord,
		Text:    "تعالوا إليّ يا جميع المتعبين وثقيلي الأحمال وأنا ____",
		Options: []string{"أريحكم", "أعينكم", "أقبلكم"},
		Correct: "أريحكم",
	},
	{
		ID:      5,
		Level:   2,
		Kind:    VerseArrange,
		Words:   []string{"أستطيع", "كل", "شيء", "في", "المسيح"},
		Correct: "أستطيع كل شيء في المسيح",
	},
	{
		ID:      6,
		Level:   2,
		Kind:    VerseReference,
		Text:    "المحبة تتأنى وترفق",
		Options: []string{"كورنثوس الأولى 13", "رومية 8", "أفسس 2"},
		Correct: "كورنثوس الأولى 13",
	},
	// Level 3
	{
		ID:      7,
		Level:   3,
		Kind:    VerseMissingWord,
		Text:    "اطلبوا أولاً ملكوت الله و____",
		Options: []string{"برّه", "مجده", "قداسته"},
		Correct: "برّه",
	},
	{
		ID:      8,
		Level:   3,
		Kind:    VerseArrange,
		Words:   []string{"إلهي", "فيملأ", "احتياجكم", "كل"},
		Correct: "فيملأ إلهي كل احتياجكم",
	},
	{
		ID:      9,
		Level:   3,
		Kind:    VerseReference,
		Text:    "الإيمان هو الثقة بما يُرجى",
		Options: []string{"عبرانيين 11", "يعقوب 1", "بطرس الأولى 5"},
		Correct: "عبرانيين 11",
	},
}

var DefaultLinks = []LinkChallenge{
	{
		ID:      1,
		Items:   []string{"موسى", "داود", "عاموس"},
		Answer:  "كانوا رعاة غنم",
		Options: []string{"كانوا رعاة غنم", "كانوا ملوكًا", "كتبوا المزامير"},
	},
	{
		ID:      2,
		Items:   []string{"زيتون", "تين", "كرمة"},
		Answer:  "أشجار ذُكرت في الكتاب",
		Options: []string{"أشجار ذُكرت في الكتاب", "نباتات صحراوية", "أطعمة العيد"},
	},
	{
		ID:      3,
		Items:   []string{"الأردن", "النيل", "الفرات"},
		Answer:  "أنهار",
		Options: []string{"أنهار", "جبال", "مدن"},
	},
}

var DefaultQuotes = []QuoteChallenge{
	{
		ID:      1,
		Quote:   "أنا وبيتي نعبد الرب",
		Answer:  "يشوع",
		Options: []string{"يشوع", "موسى", "صموئيل"},
	},
	{
		ID:      2,
		Quote:   "هأنذا أرسلني",
		Answer:  "إشعياء",
		Options: []string{"إشعياء", "إرميا", "حزقيال"},
	},
	{
		ID:      3,
		Quote:   "لتكن لي كقولك",
		Answer:  "العذراء مريم",
		Options: []string{"العذراء مريم", "حنة", "مرثا"},
	},
}

var DefaultMath = []MathQuestion{
	{
		ID:          1,
		Question:    "12 + 7 - 4",
		Answer:      15,
		Explanation: "12 + 7 = 19, 19 - 4 = 15",
	},
	{
		ID:          2,
		Question:    "6 × 8 ÷ 4",
		Answer:      12,
		Explanation: "6 × 8 = 48, 48 ÷ 4 = 12",
	},
	{
		ID:          3,
		Question:    "(9 + 3) × 5",
		Answer:      60,
		Explanation: "9 + 3 = 12, 12 × 5 = 60",
	},
}

var DefaultPhotoTasks = []PhotoTask{
	{
		ID:          1,
		Title:       "صورة جماعية",
		Description: "التقط صورة تجمع كل أعضاء الفريق في مكان واحد",
		Points:      10,
	},
	{
		ID:          2,
		Title:       "أقدم مبنى",
		Description: "صورة أمام أقدم مبنى تقابله في الرحلة",
		Points:      15,
	},
	{
		ID:          3,
		Title:       "لافتة المكان",
		Description: "صورة واضحة للافتة تحمل اسم المكان",
		Points:      5,
	},
	{
		ID:          4,
		Title:       "لقطة الغروب",
		Description: "صورة للسماء وقت الغروب من أعلى نقطة تصل إليها",
		Points:      20,
	},
}
