package classify

// Keyword tables, checked in strict priority order. Tournament literals and
// league names win over generic tokens so that, e.g., "IPL Open" classifies
// as cricket even though "open" is a tennis token.

// cricketTournaments are competition names and format abbreviations that only
// occur in cricket feeds.
var cricketTournaments = []string{
	"ipl",
	"bbl",
	"psl",
	"cpl",
	"t20",
	"t10",
	"odi",
	"big bash",
	"the hundred",
	"vitality blast",
	"ranji trophy",
	"syed mushtaq",
	"test match",
}

// soccerKeywords are league/competition names that only occur in soccer feeds.
var soccerKeywords = []string{
	"soccer",
	"football",
	"premier league",
	"la liga",
	"laliga",
	"serie a",
	"bundesliga",
	"ligue 1",
	"uefa",
	"fifa",
	"champions league",
	"europa league",
	"mls",
	"copa",
}

// cricketGeneric are weaker cricket signals: gender/team tokens and trophy
// naming common across domestic cricket.
var cricketGeneric = []string{
	"cricket",
	"cup",
	"trophy",
	"women",
	"men",
	"domestic",
	"xi",
}

// tennisKeywords are tour and tournament tokens.
var tennisKeywords = []string{
	"tennis",
	"atp",
	"wta",
	"challenger",
	"itf",
	"grand slam",
	"doubles",
	"singles",
	"open",
}

// teamTokens disqualify a two-party title from the tennis name heuristic:
// they indicate clubs or representative teams, not individual players.
var teamTokens = []string{
	"fc",
	"club",
	"united",
	"city",
	"team",
	"county",
	"state",
}
