package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gpsnmea/internal/track"
)

const kmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
<name>%s</name>
<open>1</open>`

const kmlPlacemark = `
<Placemark>
<name>%s</name>
<description>%s</description>
<TimeStamp>
<when>%s</when>
</TimeStamp>
<Point>
<coordinates>%s</coordinates>
</Point>
</Placemark>`

const kmlFooter = "\n</Document>\n</kml>\n"

// KML viewers want coordinates as lon,lat,altitude; altitude is pinned
// to 0 since NMEA position reports here are 2D.
func writeKML(w io.Writer, reports []track.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, kmlHeader, "GPS positions")
	for _, r := range reports {
		lon := strconv.FormatFloat(r.Lon, 'f', 6, 64)
		lat := strconv.FormatFloat(r.Lat, 'f', 6, 64)
		name := escapeXML(fmt.Sprintf("position %d", r.Ref))
		desc := escapeXML(fmt.Sprintf("ref %d at %s", r.Ref, r.Stamp()))
		when := ""
		if r.HasDate {
			when = r.Stamp()
		}
		fmt.Fprintf(&b, kmlPlacemark, name, desc, when, lon+","+lat+",0")
	}
	b.WriteString(kmlFooter)
	_, err := io.WriteString(w, b.String())
	return err
}

const kmlNetworkLink = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<NetworkLink>
<name>Live GPS position</name>
<description>current GPS position</description>
<Link>
<href>%s</href>
<refreshVisibility>1</refreshVisibility>
<refreshMode>onInterval</refreshMode>
<refreshInterval>1</refreshInterval>
</Link>
</NetworkLink>
</kml>
`

// NetworkLink writes the companion document that makes a viewer keep
// refreshing the primary KML file named by href.
func NetworkLink(w io.Writer, href string) error {
	_, err := fmt.Fprintf(w, kmlNetworkLink, escapeXML(href))
	return err
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\t", "    ",
	"\n", "",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
