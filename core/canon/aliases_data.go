package canon

// Spellings are stored without trailing periods; ResolveAlias strips one.
var defaultAliases = []Alias{
	// Old Testament
	{"Gen", "gen", OldTestament},
	{"Ex", "ex", OldTestament},
	{"Lev", "lev", OldTestament},
	{"Num", "num", OldTestament},
	{"Deut", "deut", OldTestament},
	{"Josh", "josh", OldTestament},
	{"Judg", "judg", OldTestament},
	{"Ruth", "ruth", OldTestament},
	{"1 Sam", "1-sam", OldTestament},
	{"2 Sam", "2-sam", OldTestament},
	{"1 Kgs", "1-kgs", OldTestament},
	{"2 Kgs", "2-kgs", OldTestament},
	{"1 Chr", "1-chr", OldTestament},
	{"2 Chr", "2-chr", OldTestament},
	{"Ezra", "ezra", OldTestament},
	{"Neh", "neh", OldTestament},
	{"Esth", "esth", OldTestament},
	{"Job", "job", OldTestament},
	{"Ps", "ps", OldTestament},
	{"Prov", "prov", OldTestament},
	{"Eccl", "eccl", OldTestament},
	{"Song", "song", OldTestament},
	{"Isa", "isa", OldTestament},
	{"Jer", "jer", OldTestament},
	{"Lam", "lam", OldTestament},
	{"Ezek", "ezek", OldTestament},
	{"Dan", "dan", OldTestament},
	{"Hosea", "hosea", OldTestament},
	{"Joel", "joel", OldTestament},
	{"Amos", "amos", OldTestament},
	{"Obad", "obad", OldTestament},
	{"Jonah", "jonah", OldTestament},
	{"Micah", "micah", OldTestament},
	{"Nahum", "nahum", OldTestament},
	{"Hab", "hab", OldTestament},
	{"Zeph", "zeph", OldTestament},
	{"Hag", "hag", OldTestament},
	{"Zech", "zech", OldTestament},
	{"Mal", "mal", OldTestament},
	{"Genesis", "gen", OldTestament},
	{"Exodus", "ex", OldTestament},
	{"Isaiah", "isa", OldTestament},
	{"Jeremiah", "jer", OldTestament},
	{"Psalms", "ps", OldTestament},

	// New Testament
	{"Matt", "matt", NewTestament},
	{"Mark", "mark", NewTestament},
	{"Luke", "luke", NewTestament},
	{"John", "john", NewTestament},
	{"Acts", "acts", NewTestament},
	{"Rom", "rom", NewTestament},
	{"1 Cor", "1-cor", NewTestament},
	{"2 Cor", "2-cor", NewTestament},
	{"Gal", "gal", NewTestament},
	{"Eph", "eph", NewTestament},
	{"Philip", "philip", NewTestament},
	{"Col", "col", NewTestament},
	{"1 Thes", "1-thes", NewTestament},
	{"2 Thes", "2-thes", NewTestament},
	{"1 Tim", "1-tim", NewTestament},
	{"2 Tim", "2-tim", NewTestament},
	{"Titus", "titus", NewTestament},
	{"Philem", "philem", NewTestament},
	{"Heb", "heb", NewTestament},
	{"James", "james", NewTestament},
	{"1 Pet", "1-pet", NewTestament},
	{"2 Pet", "2-pet", NewTestament},
	{"1 Jn", "1-jn", NewTestament},
	{"2 Jn", "2-jn", NewTestament},
	{"3 Jn", "3-jn", NewTestament},
	{"Jude", "jude", NewTestament},
	{"Rev", "rev", NewTestament},
	{"Matthew", "matt", NewTestament},
	{"Romans", "rom", NewTestament},
	{"Revelation", "rev", NewTestament},

	// Book of Mormon
	{"1 Ne", "1-ne", BookOfMormon},
	{"2 Ne", "2-ne", BookOfMormon},
	{"Jacob", "jacob", BookOfMormon},
	{"Enos", "enos", BookOfMormon},
	{"Jarom", "jarom", BookOfMormon},
	{"Omni", "omni", BookOfMormon},
	{"W of M", "w-of-m", BookOfMormon},
	{"Mosiah", "mosiah", BookOfMormon},
	{"Alma", "alma", BookOfMormon},
	{"Hel", "hel", BookOfMormon},
	{"3 Ne", "3-ne", BookOfMormon},
	{"4 Ne", "4-ne", BookOfMormon},
	{"Morm", "morm", BookOfMormon},
	{"Ether", "ether", BookOfMormon},
	{"Moro", "moro", BookOfMormon},
	{"1 Nephi", "1-ne", BookOfMormon},
	{"2 Nephi", "2-ne", BookOfMormon},
	{"Words of Mormon", "w-of-m", BookOfMormon},
	{"Helaman", "hel", BookOfMormon},
	{"3 Nephi", "3-ne", BookOfMormon},
	{"4 Nephi", "4-ne", BookOfMormon},
	{"Mormon", "morm", BookOfMormon},
	{"Moroni", "moro", BookOfMormon},
	{"1Ne", "1-ne", BookOfMormon},
	{"2Ne", "2-ne", BookOfMormon},
	{"3Ne", "3-ne", BookOfMormon},
	{"4Ne", "4-ne", BookOfMormon},

	// Doctrine and Covenants
	{"D&C", "dc", DoctrineAndCovenants},
	{"OD", "od", DoctrineAndCovenants},
	{"Doctrine and Covenants", "dc", DoctrineAndCovenants},
	{"Doctrine & Covenants", "dc", DoctrineAndCovenants},

	// Pearl of Great Price
	{"Moses", "moses", PearlOfGreatPrice},
	{"Abr", "abr", PearlOfGreatPrice},
	{"JS—M", "js-m", PearlOfGreatPrice},
	{"JS—H", "js-h", PearlOfGreatPrice},
	{"A of F", "a-of-f", PearlOfGreatPrice},

	// Study helps
	{"TG", "tg", StudyHelps},
	{"BD", "bd", StudyHelps},
	{"GS", "gs", StudyHelps},
	{"IT", "it", StudyHelps},
	{"JST", "jst", StudyHelps},
	{"Topical Guide", "tg", StudyHelps},
	{"Bible Dictionary", "bd", StudyHelps},
	{"Guide to the Scriptures", "gs", StudyHelps},
	{"Index to the Triple Combination", "it", StudyHelps},
	{"Joseph Smith Translation", "jst", StudyHelps},
}
