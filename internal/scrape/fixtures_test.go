package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture HTML: %v", err)
	}
	return doc
}

func mustTable(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	table, err := LocateInjuriesTable(mustDoc(t, html))
	if err != nil {
		t.Fatalf("locating table in fixture: %v", err)
	}
	return table
}

const englishPage = `<!DOCTYPE html>
<html>
<head>
	<title>Premier League - Injuries</title>
	<link rel="canonical" href="https://stats.example.com/premier-league/injuries/wettbewerb/GB1/plus/1">
</head>
<body>
	<h1>Premier League</h1>
	<nav><ol><li><a href="/">Home</a></li><li>Injuries</li></ol></nav>
	<table class="items">
		<thead>
			<tr>
				<th>Player</th><th>Club</th><th>Injury</th><th>since</th><th>until</th>
			</tr>
		</thead>
		<tbody>
			<tr>
				<td><a class="spielprofil_tooltip" href="/jack-ward/profil/spieler/10001">Jack Ward</a></td>
				<td><a href="/fc-example/startseite/verein/9001" title="FC Example"><img src="/crest.png" alt="FC Example"></a></td>
				<td class="links">Cruciate ligament tear</td>
				<td>Oct 11, 2025</td>
				<td>-</td>
			</tr>
			<tr>
				<td><a class="spielprofil_tooltip" href="/liam-stone/profil/spieler/10002">Liam Stone</a></td>
				<td><a href="/afc-sample/startseite/verein/9002">AFC Sample</a></td>
				<td class="links">Hamstring strain</td>
				<td>11.10.2025</td>
				<td>01/11/2025</td>
			</tr>
			<tr>
				<td></td>
				<td></td>
				<td class="links">Knock</td>
				<td>-</td>
				<td>-</td>
			</tr>
		</tbody>
	</table>
</body>
</html>`

const germanPage = `<!DOCTYPE html>
<html>
<head><title>Bundesliga - Verletzte Spieler</title></head>
<body>
	<h1>Bundesliga</h1>
	<table class="responsive">
		<thead>
			<tr>
				<th>Spieler</th><th>Verein</th><th>Verletzung</th><th>seit</th><th>bis</th>
			</tr>
		</thead>
		<tbody>
			<tr>
				<td><a href="/max-muster/profil/spieler/20001">Max Muster</a></td>
				<td><img src="/crest.png" alt="SV Beispiel"></td>
				<td class="links">Kreuzbandriss</td>
				<td>11.10.2025</td>
				<td>?</td>
			</tr>
		</tbody>
	</table>
</body>
</html>`
