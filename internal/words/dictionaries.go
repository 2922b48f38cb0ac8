package words

// Opaque lookup tables. Entries are pre-normalized (lowercase, single spaces).

func makeSet(entries ...string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, entry := range entries {
		set[entry] = true
	}
	return set
}

var commonNames = makeSet(
	"aaron", "abigail", "adam", "adrian", "alex", "alice", "amanda", "amelia", "andrew", "anna", "anthony", "aria", "ashley",
	"ben", "benjamin", "blake", "brandon", "brian", "brianna",
	"caleb", "camila", "carlos", "caroline", "charles", "charlotte", "chloe", "christian", "christopher", "claire",
	"daniel", "danielle", "david", "diana", "dylan",
	"edward", "elena", "elizabeth", "ella", "emily", "emma", "ethan", "eva", "evan",
	"felix", "fiona", "frank",
	"gabriel", "grace",
	"hannah", "harper", "hazel", "henry", "holly",
	"isabella", "isla", "ivan",
	"jack", "jacob", "james", "jason", "jasmine", "jayden", "jennifer", "jeremy", "jessica", "john", "jonathan", "joseph", "joshua", "julia", "julian",
	"karen", "katherine", "kayla", "kevin", "kimberly",
	"laura", "layla", "leo", "liam", "lily", "logan", "louis", "lucas", "lucy", "luna",
	"madison", "maria", "mason", "matthew", "maya", "megan", "mia", "michael", "michelle", "mila", "muhammad",
	"natalie", "nathan", "noah", "nora",
	"olivia", "oscar", "owen",
	"patrick", "penelope", "peter", "phoebe",
	"quinn",
	"rachel", "rebecca", "richard", "robert", "ruby", "ryan",
	"samantha", "samuel", "sarah", "sebastian", "sophia", "sofia", "stella", "steven",
	"thomas", "tristan", "tyler",
	"victoria", "violet",
	"william", "wyatt",
	"xavier",
	"yara", "yusuf",
	"zachary", "zoe",
)

var commonAnimals = makeSet(
	"ant", "ape", "bear", "bee", "buffalo", "camel", "cat", "cheetah", "chicken", "chimpanzee", "cow", "crab", "crocodile",
	"deer", "dog", "dolphin", "donkey", "duck", "eagle", "elephant", "falcon", "fox", "frog", "giraffe", "goat", "gorilla",
	"hamster", "hawk", "hippo", "horse", "hyena", "jaguar", "kangaroo", "koala", "leopard", "lion", "lizard", "llama", "monkey",
	"moose", "mouse", "octopus", "owl", "panda", "panther", "parrot", "peacock", "penguin", "pig", "pigeon", "rabbit", "raccoon",
	"rat", "raven", "rhino", "seal", "shark", "sheep", "snake", "sparrow", "squid", "swan", "tiger", "turkey", "turtle", "whale",
	"wolf", "zebra",
)

var commonCountries = makeSet(
	"argentina", "australia", "austria", "bangladesh", "belgium", "brazil", "canada", "chile", "china", "colombia", "croatia",
	"denmark", "egypt", "england", "ethiopia", "finland", "france", "germany", "ghana", "greece", "hungary", "iceland", "india",
	"indonesia", "iran", "iraq", "ireland", "israel", "italy", "jamaica", "japan", "kenya", "malaysia", "mexico", "morocco",
	"nepal", "netherlands", "new zealand", "nigeria", "norway", "pakistan", "peru", "philippines", "poland", "portugal", "qatar",
	"romania", "russia", "saudi arabia", "scotland", "singapore", "south africa", "south korea", "spain", "sweden", "switzerland",
	"thailand", "turkey", "uganda", "ukraine", "united arab emirates", "united kingdom", "united states", "uruguay", "venezuela",
	"vietnam", "wales", "zimbabwe",
)

var commonCities = makeSet(
	"amsterdam", "athens", "atlanta", "bangkok", "barcelona", "beijing", "berlin", "boston", "brisbane", "brussels", "budapest",
	"cairo", "calgary", "cape town", "chicago", "copenhagen", "dallas", "delhi", "dubai", "dublin", "edinburgh", "florence",
	"geneva", "glasgow", "helsinki", "houston", "istanbul", "jakarta", "johannesburg", "kathmandu", "kyoto", "lagos", "lahore",
	"lima", "lisbon", "london", "los angeles", "madrid", "manchester", "melbourne", "mexico city", "miami", "milan", "montreal",
	"mumbai", "munich", "new york", "osaka", "oslo", "ottawa", "paris", "prague", "quebec", "rome", "san francisco", "santiago",
	"seattle", "seoul", "shanghai", "singapore", "stockholm", "sydney", "taipei", "tokyo", "toronto", "valencia", "vancouver",
	"vienna", "warsaw", "washington", "zurich",
)

var commonFoods = makeSet(
	"apple", "apricot", "avocado", "banana", "bagel", "biscuit", "bread", "burger", "burrito", "cake", "carrot", "cereal", "cheese",
	"chicken", "chili", "chips", "chocolate", "cookie", "croissant", "curry", "donut", "dumpling", "egg", "falafel", "fries", "grapes",
	"hamburger", "honey", "ice cream", "jam", "kebab", "lasagna", "lemon", "mango", "meatball", "noodle", "omelette", "orange", "pasta",
	"peach", "pear", "pepper", "pizza", "popcorn", "pudding", "pumpkin", "ramen", "rice", "salad", "sandwich", "sausage", "soup", "steak",
	"sushi", "taco", "toast", "tomato", "waffle", "yogurt",
)

var commonMovies = makeSet(
	"avatar", "aladdin", "alien", "amadeus", "arrival", "batman", "braveheart", "cars", "casablanca", "coco", "dune", "encanto",
	"frozen", "gladiator", "gravity", "her", "inception", "interstellar", "jaws", "joker", "memento", "moana", "notebook",
	"oppenheimer", "parasite", "psycho", "rocky", "scarface", "shrek", "tangled", "titanic", "up", "whiplash", "zootopia",
)

var commonBrands = makeSet(
	"adidas", "airbnb", "amazon", "apple", "asus", "audi", "bmw", "burberry", "canon", "coca cola", "dell", "disney", "ferrari",
	"google", "gucci", "honda", "hyundai", "ikea", "intel", "kfc", "lego", "lenovo", "loreal", "louis vuitton", "mcdonalds", "mercedes",
	"microsoft", "netflix", "nike", "nintendo", "nokia", "pepsi", "porsche", "prada", "reebok", "samsung", "sony", "starbucks", "tesla",
	"toyota", "uber", "uniqlo", "visa", "volkswagen", "xbox", "yamaha", "zara",
)
