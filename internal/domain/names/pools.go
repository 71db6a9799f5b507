package names

// Region is a name pool whose first and last names belong together.
type Region struct {
	Name  string
	First []string
	Last  []string
}

// North and South are disjoint regional pools.
var (
	North = Region{
		Name: "north",
		First: []string{
			"Aarav", "Vivaan", "Aditya", "Vihaan", "Arjun", "Reyansh", "Ayaan", "Ishaan",
			"Shaurya", "Atharva", "Dhruv", "Kabir", "Rohan", "Yash", "Kunal", "Rahul",
			"Rohit", "Amit", "Gaurav", "Nikhil", "Ankit", "Varun", "Mayank", "Saanvi",
			"Ananya", "Riya", "Pooja", "Neha", "Priya", "Simran", "Shweta", "Sakshi",
			"Kritika", "Garima", "Shivani", "Tanvi", "Vaishnavi", "Zoya",
		},
		Last: []string{
			"Sharma", "Verma", "Gupta", "Malhotra", "Singh", "Yadav", "Mishra", "Agarwal",
			"Bansal", "Chopra", "Kapoor", "Khanna", "Bhatia", "Saxena", "Tiwari", "Dubey",
			"Pandey", "Tripathi", "Chaudhary", "Thakur", "Garg", "Mittal", "Jindal",
		},
	}

	South = Region{
		Name: "south",
		First: []string{
			"Sai", "Karthik", "Pranav", "Harish", "Srinivas", "Venkat", "Arvind", "Naveen",
			"Prakash", "Suresh", "Ramesh", "Ganesh", "Madhav", "Raghav", "Vijay", "Ajith",
			"Lakshmi", "Divya", "Kavya", "Meena", "Deepika", "Swathi", "Anjali", "Sneha",
			"Keerthi", "Nithya", "Revathi", "Pavithra", "Sowmya", "Harini",
		},
		Last: []string{
			"Reddy", "Nair", "Iyer", "Rao", "Gowda", "Pillai", "Menon", "Hegde",
			"Shetty", "Kamath", "Prabhu", "Naik", "Shenoy", "Pai", "Krishnan", "Subramanian",
			"Raman", "Naidu", "Chettiar", "Varma",
		},
	}
)

// Regions lists the pools in draw order; index 0 is chosen when the region
// draw falls below one half.
var Regions = [...]Region{North, South}

// Suffixes are exam-branding tokens used in handle-style names.
var Suffixes = []string{"SSC", "Bank", "CGL", "CHSL", "MTS", "Rly"}
