package domain

import "faithtrack/internal/platform/random"

type Verse struct {
	Text      string
	Reference string
}

var verseTable = map[Category][]Verse{
	CategoryFinancial: {
		{Text: "Honor the Lord with your wealth, with the firstfruits of all your crops.", Reference: "Proverbs 3:9"},
		{Text: "For where your treasure is, there your heart will be also.", Reference: "Matthew 6:21"},
		{Text: "The plans of the diligent lead surely to abundance.", Reference: "Proverbs 21:5"},
		{Text: "Whoever can be trusted with very little can also be trusted with much.", Reference: "Luke 16:10"},
		{Text: "But remember the Lord your God, for it is he who gives you the ability to produce wealth.", Reference: "Deuteronomy 8:18"},
	},
	CategorySpiritual: {
		{Text: "Your word is a lamp for my feet, a light on my path.", Reference: "Psalm 119:105"},
		{Text: "All Scripture is God-breathed and is useful for teaching, rebuking, correcting and training in righteousness.", Reference: "2 Timothy 3:16"},
		{Text: "Do not merely listen to the word, and so deceive yourselves. Do what it says.", Reference: "James 1:22"},
		{Text: "How sweet are your words to my taste, sweeter than honey to my mouth!", Reference: "Psalm 119:103"},
		{Text: "Let the message of Christ dwell among you richly.", Reference: "Colossians 3:16"},
	},
	CategoryCustom: {
		{Text: "Commit to the Lord whatever you do, and he will establish your plans.", Reference: "Proverbs 16:3"},
		{Text: "I can do all this through him who gives me strength.", Reference: "Philippians 4:13"},
		{Text: "And let us not grow weary of doing good, for in due season we will reap, if we do not give up.", Reference: "Galatians 6:9"},
		{Text: "Whatever you do, work at it with all your heart, as working for the Lord.", Reference: "Colossians 3:23"},
		{Text: "Be strong and courageous. Do not be afraid; do not be discouraged, for the Lord your God will be with you wherever you go.", Reference: "Joshua 1:9"},
	},
}

// VersesFor returns a copy of the table for category. Unknown categories get
// the custom table.
func VersesFor(category Category) []Verse {
	table, ok := verseTable[category]
	if !ok {
		table = verseTable[CategoryCustom]
	}
	out := make([]Verse, len(table))
	copy(out, table)
	return out
}

// SelectVerse draws one verse for category from src.
func SelectVerse(category Category, src random.Source) Verse {
	table, ok := verseTable[category]
	if !ok {
		table = verseTable[CategoryCustom]
	}
	i := src.IntN(len(table))
	if i < 0 || i >= len(table) {
		i = 0
	}
	return table[i]
}
