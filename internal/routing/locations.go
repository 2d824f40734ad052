package routing

// Static geography for the Kilinochchi district collection area. Road
// distances are in km and seeded symmetrically; pairs not listed here fall
// back to DefaultDistanceKm.

var kilinochchiCoordinates = []struct {
	name   string
	coords Coordinates
}{
	{"Kilinochchi Town", Coordinates{Lat: 9.3803, Lng: 80.3770}},
	{"Ananthapuram", Coordinates{Lat: 9.3990, Lng: 80.3605}},
	{"Ramanathapuram", Coordinates{Lat: 9.3652, Lng: 80.3921}},
	{"Uruthirapuram", Coordinates{Lat: 9.3424, Lng: 80.4118}},
	{"Paranthan", Coordinates{Lat: 9.4431, Lng: 80.4048}},
	{"Vaddakkachchi", Coordinates{Lat: 9.3918, Lng: 80.4623}},
	{"Tharmapuram", Coordinates{Lat: 9.3565, Lng: 80.4741}},
	{"Akkarayankulam", Coordinates{Lat: 9.3082, Lng: 80.3327}},
	{"Kandawalai", Coordinates{Lat: 9.4742, Lng: 80.4753}},
	{"Pallai", Coordinates{Lat: 9.5958, Lng: 80.3976}},
	{"Poonakary", Coordinates{Lat: 9.5091, Lng: 80.2280}},
	{"Mulankavil", Coordinates{Lat: 9.4238, Lng: 80.1153}},
}

var kilinochchiDistances = []struct {
	from, to string
	km       float64
}{
	{"Kilinochchi Town", "Ananthapuram", 3.2},
	{"Kilinochchi Town", "Ramanathapuram", 2.8},
	{"Kilinochchi Town", "Uruthirapuram", 5.6},
	{"Kilinochchi Town", "Paranthan", 7.9},
	{"Kilinochchi Town", "Vaddakkachchi", 9.4},
	{"Kilinochchi Town", "Tharmapuram", 11.2},
	{"Kilinochchi Town", "Akkarayankulam", 9.8},
	{"Kilinochchi Town", "Kandawalai", 14.6},
	{"Kilinochchi Town", "Pallai", 25.3},
	{"Kilinochchi Town", "Poonakary", 24.7},
	{"Kilinochchi Town", "Mulankavil", 31.5},
	{"Ananthapuram", "Ramanathapuram", 4.1},
	{"Ananthapuram", "Paranthan", 6.8},
	{"Ramanathapuram", "Uruthirapuram", 3.9},
	{"Uruthirapuram", "Akkarayankulam", 7.4},
	{"Uruthirapuram", "Tharmapuram", 8.1},
	{"Paranthan", "Kandawalai", 9.2},
	{"Paranthan", "Pallai", 17.8},
	{"Paranthan", "Poonakary", 19.4},
	{"Vaddakkachchi", "Tharmapuram", 4.6},
	{"Vaddakkachchi", "Kandawalai", 9.7},
	{"Tharmapuram", "Kandawalai", 13.5},
	{"Poonakary", "Mulankavil", 12.9},
	{"Pallai", "Kandawalai", 14.1},
}
