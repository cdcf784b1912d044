package main

// allStates is the full pull roster.
var allStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland",
	"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri",
	"Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// majorMetros lists the per-metro queries run on top of the state-level
// query for states where a single state query under-covers the market.
var majorMetros = map[string][]string{
	"California": {
		"Los Angeles CA", "San Francisco CA", "San Diego CA", "San Jose CA",
		"Sacramento CA", "Fresno CA", "Oakland CA", "Long Beach CA",
		"Bakersfield CA", "Anaheim CA", "Santa Ana CA", "Riverside CA",
		"Stockton CA", "Irvine CA", "Modesto CA", "San Bernardino CA",
	},
	"Texas": {
		"Houston TX", "Dallas TX", "San Antonio TX", "Austin TX",
		"Fort Worth TX", "El Paso TX", "Arlington TX", "Corpus Christi TX",
		"Plano TX", "Lubbock TX", "Laredo TX", "Irving TX",
		"Amarillo TX", "McKinney TX", "Frisco TX", "Midland TX",
	},
	"New York": {
		"New York City NY", "Buffalo NY", "Rochester NY", "Syracuse NY",
		"Albany NY", "Yonkers NY", "New Rochelle NY", "Mount Vernon NY",
		"Schenectady NY", "Utica NY", "Long Island NY", "White Plains NY",
	},
	"Florida": {
		"Miami FL", "Orlando FL", "Tampa FL", "Jacksonville FL",
		"Fort Lauderdale FL", "St Petersburg FL", "Hialeah FL", "Tallahassee FL",
		"Cape Coral FL", "Fort Myers FL", "Pembroke Pines FL", "Naples FL",
	},
	"Illinois": {
		"Chicago IL", "Aurora IL", "Naperville IL", "Rockford IL",
		"Joliet IL", "Springfield IL", "Peoria IL", "Elgin IL",
	},
	"Pennsylvania": {
		"Philadelphia PA", "Pittsburgh PA", "Allentown PA", "Erie PA",
		"Reading PA", "Scranton PA", "Bethlehem PA", "Lancaster PA",
	},
	"Ohio": {
		"Columbus OH", "Cleveland OH", "Cincinnati OH", "Toledo OH",
		"Akron OH", "Dayton OH", "Parma OH", "Canton OH",
	},
	"Georgia": {
		"Atlanta GA", "Augusta GA", "Columbus GA", "Savannah GA",
		"Athens GA", "Macon GA", "Sandy Springs GA", "Roswell GA",
	},
	"North Carolina": {
		"Charlotte NC", "Raleigh NC", "Greensboro NC", "Durham NC",
		"Winston-Salem NC", "Fayetteville NC", "Cary NC", "Wilmington NC",
	},
	"Michigan": {
		"Detroit MI", "Grand Rapids MI", "Warren MI", "Sterling Heights MI",
		"Ann Arbor MI", "Lansing MI", "Flint MI", "Dearborn MI",
	},
	"New Jersey": {
		"Newark NJ", "Jersey City NJ", "Paterson NJ", "Elizabeth NJ",
		"Edison NJ", "Woodbridge NJ", "Trenton NJ", "Camden NJ",
	},
	"Virginia": {
		"Virginia Beach VA", "Norfolk VA", "Chesapeake VA", "Richmond VA",
		"Newport News VA", "Alexandria VA", "Hampton VA", "Roanoke VA",
	},
	"Washington": {
		"Seattle WA", "Spokane WA", "Tacoma WA", "Vancouver WA",
		"Bellevue WA", "Kent WA", "Everett WA", "Renton WA",
	},
	"Arizona": {
		"Phoenix AZ", "Tucson AZ", "Mesa AZ", "Chandler AZ",
		"Scottsdale AZ", "Glendale AZ", "Gilbert AZ", "Tempe AZ",
	},
	"Massachusetts": {
		"Boston MA", "Worcester MA", "Springfield MA", "Cambridge MA",
		"Lowell MA", "Brockton MA", "Quincy MA", "New Bedford MA",
	},
	"Tennessee": {
		"Nashville TN", "Memphis TN", "Knoxville TN", "Chattanooga TN",
		"Clarksville TN", "Murfreesboro TN", "Franklin TN", "Jackson TN",
	},
	"Indiana": {
		"Indianapolis IN", "Fort Wayne IN", "Evansville IN", "South Bend IN",
		"Carmel IN", "Fishers IN", "Bloomington IN", "Hammond IN",
	},
	"Missouri": {
		"Kansas City MO", "St Louis MO", "Springfield MO", "Columbia MO",
		"Independence MO", "Lee's Summit MO", "O'Fallon MO", "St Joseph MO",
	},
	"Maryland": {
		"Baltimore MD", "Frederick MD", "Rockville MD", "Gaithersburg MD",
		"Bowie MD", "Hagerstown MD", "Annapolis MD", "College Park MD",
	},
	"Wisconsin": {
		"Milwaukee WI", "Madison WI", "Green Bay WI", "Kenosha WI",
		"Racine WI", "Appleton WI", "Waukesha WI", "Eau Claire WI",
	},
	"Colorado": {
		"Denver CO", "Colorado Springs CO", "Aurora CO", "Fort Collins CO",
		"Lakewood CO", "Thornton CO", "Arvada CO", "Boulder CO",
	},
	"Minnesota": {
		"Minneapolis MN", "St Paul MN", "Rochester MN", "Duluth MN",
		"Bloomington MN", "Brooklyn Park MN", "Plymouth MN", "Woodbury MN",
	},
	"South Carolina": {
		"Charleston SC", "Columbia SC", "North Charleston SC", "Greenville SC",
		"Rock Hill SC", "Mount Pleasant SC", "Spartanburg SC", "Myrtle Beach SC",
	},
	"Alabama": {
		"Birmingham AL", "Montgomery AL", "Huntsville AL", "Mobile AL",
		"Tuscaloosa AL", "Hoover AL", "Dothan AL", "Auburn AL",
	},
	"Louisiana": {
		"New Orleans LA", "Baton Rouge LA", "Shreveport LA", "Lafayette LA",
		"Lake Charles LA", "Kenner LA", "Bossier City LA", "Monroe LA",
	},
	"Kentucky": {
		"Louisville KY", "Lexington KY", "Bowling Green KY", "Owensboro KY",
		"Covington KY", "Richmond KY", "Georgetown KY", "Florence KY",
	},
	"Oregon": {
		"Portland OR", "Salem OR", "Eugene OR", "Gresham OR",
		"Hillsboro OR", "Beaverton OR", "Bend OR", "Medford OR",
	},
	"Oklahoma": {
		"Oklahoma City OK", "Tulsa OK", "Norman OK", "Broken Arrow OK",
		"Lawton OK", "Edmond OK", "Moore OK", "Midwest City OK",
	},
	"Connecticut": {
		"Bridgeport CT", "New Haven CT", "Hartford CT", "Stamford CT",
		"Waterbury CT", "Norwalk CT", "Danbury CT", "New Britain CT",
	},
	"Nevada": {
		"Las Vegas NV", "Henderson NV", "Reno NV", "North Las Vegas NV",
		"Sparks NV", "Carson City NV", "Elko NV", "Mesquite NV",
	},
}
