// pkg/registry/default.go
package registry

// DefaultVersion is the version of the knowledge base compiled into the binary.
const DefaultVersion = "2026.10.1"

// Default returns the built-in registry. It panics only if the compiled-in
// knowledge base is itself inconsistent, which the package tests rule out.
func Default() *Registry {
	r, err := New(DefaultKnowledgeBase())
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultKnowledgeBase returns a fresh copy of the built-in knowledge base.
func DefaultKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		Version:     DefaultVersion,
		LastUpdated: "2026-10-01T00:00:00Z",
		Universities: []UniversityMapping{
			{Canonical: "American University of Dubai", Abbreviations: []string{"AUD", "American University in Dubai"}, Category: "private_american", Region: "Dubai"},
			{Canonical: "American University of Sharjah", Abbreviations: []string{"AUS", "American University in Sharjah"}, Category: "private_american", Region: "Sharjah"},
			{Canonical: "American University in the Emirates", Abbreviations: []string{"AUE"}, Category: "private_american", Region: "Dubai"},
			{Canonical: "United Arab Emirates University", Abbreviations: []string{"UAEU", "UAE University"}, Category: "federal", Region: "Al Ain"},
			{Canonical: "Zayed University", Abbreviations: []string{"ZU"}, Category: "federal", Region: "Abu Dhabi"},
			{Canonical: "Higher Colleges of Technology", Abbreviations: []string{"HCT"}, Category: "federal", Region: "United Arab Emirates"},
			{Canonical: "Khalifa University", Abbreviations: []string{"KU", "Khalifa University of Science and Technology", "KUST"}, Category: "federal", Region: "Abu Dhabi"},
			{Canonical: "University of Sharjah", Abbreviations: []string{"UoS"}, Category: "public_local", Region: "Sharjah"},
			{Canonical: "British University in Dubai", Abbreviations: []string{"BUiD"}, Category: "private_british", Region: "Dubai"},
			{Canonical: "Canadian University Dubai", Abbreviations: []string{"CUD"}, Category: "private_international", Region: "Dubai"},
			{Canonical: "University of Wollongong in Dubai", Abbreviations: []string{"UOWD", "Wollongong Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Heriot-Watt University Dubai", Abbreviations: []string{"HWU", "Heriot Watt Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Middlesex University Dubai", Abbreviations: []string{"MDX", "Middlesex Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "New York University Abu Dhabi", Abbreviations: []string{"NYUAD", "NYU Abu Dhabi"}, Category: "international_branch", Region: "Abu Dhabi"},
			{Canonical: "Sorbonne University Abu Dhabi", Abbreviations: []string{"SUAD", "Sorbonne Abu Dhabi"}, Category: "international_branch", Region: "Abu Dhabi"},
			{Canonical: "Rochester Institute of Technology Dubai", Abbreviations: []string{"RIT Dubai", "RITD"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Birla Institute of Technology and Science Dubai", Abbreviations: []string{"BITS Dubai", "BITS Pilani Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Amity University Dubai", Abbreviations: []string{"Amity Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Murdoch University Dubai", Abbreviations: []string{"Murdoch Dubai"}, Category: "international_branch", Region: "Dubai"},
			{Canonical: "Abu Dhabi University", Abbreviations: []string{"ADU"}, Category: "private_local", Region: "Abu Dhabi"},
			{Canonical: "Ajman University", Abbreviations: []string{"AJU", "Ajman Uni"}, Category: "private_local", Region: "Ajman"},
			{Canonical: "University of Dubai", Abbreviations: []string{"UD"}, Category: "private_local", Region: "Dubai"},
			{Canonical: "Al Ghurair University", Abbreviations: []string{"AGU"}, Category: "private_local", Region: "Dubai"},
		},
		Majors: []MajorMapping{
			{Canonical: "Computer Science", Variants: []string{"CS", "Comp Sci", "CompSci", "Computer Sciences", "Computing"}, Category: "technology", RelatedIndustries: []string{"Technology", "Software", "Fintech"}, SkillCategories: []string{"programming", "data"}},
			{Canonical: "Software Engineering", Variants: []string{"SWE", "Software Eng"}, Category: "technology", RelatedIndustries: []string{"Technology", "Software"}, SkillCategories: []string{"programming"}},
			{Canonical: "Information Technology", Variants: []string{"IT", "Information Systems", "MIS"}, Category: "technology", RelatedIndustries: []string{"Technology", "Consulting"}, SkillCategories: []string{"programming", "tools"}},
			{Canonical: "Data Science", Variants: []string{"Data Analytics", "Business Analytics"}, Category: "technology", RelatedIndustries: []string{"Technology", "Finance", "Consulting"}, SkillCategories: []string{"data", "programming"}},
			{Canonical: "Artificial Intelligence", Variants: []string{"AI", "Machine Learning Engineering"}, Category: "technology", RelatedIndustries: []string{"Technology", "Research"}, SkillCategories: []string{"data", "programming"}},
			{Canonical: "Cybersecurity", Variants: []string{"Cyber Security", "Information Security", "InfoSec"}, Category: "technology", RelatedIndustries: []string{"Technology", "Government", "Banking"}, SkillCategories: []string{"programming"}},
			{Canonical: "Computer Engineering", Variants: []string{"CE", "Comp Eng", "Computer Eng"}, Category: "engineering", RelatedIndustries: []string{"Technology", "Telecommunications"}, SkillCategories: []string{"programming", "engineering"}},
			{Canonical: "Electrical Engineering", Variants: []string{"EE", "Electrical Eng", "Electronics Engineering"}, Category: "engineering", RelatedIndustries: []string{"Energy", "Telecommunications"}, SkillCategories: []string{"engineering"}},
			{Canonical: "Mechanical Engineering", Variants: []string{"ME", "Mech Eng", "Mechanical Eng"}, Category: "engineering", RelatedIndustries: []string{"Manufacturing", "Energy", "Aviation"}, SkillCategories: []string{"engineering"}},
			{Canonical: "Civil Engineering", Variants: []string{"Civil Eng", "Structural Engineering"}, Category: "engineering", RelatedIndustries: []string{"Construction", "Real Estate"}, SkillCategories: []string{"engineering"}},
			{Canonical: "Chemical Engineering", Variants: []string{"Chem Eng", "ChemE"}, Category: "engineering", RelatedIndustries: []string{"Energy", "Oil and Gas"}, SkillCategories: []string{"engineering"}},
			{Canonical: "Business Administration", Variants: []string{"BBA", "MBA", "Business Admin", "Business Management", "Business"}, Category: "business", RelatedIndustries: []string{"Consulting", "Retail", "Banking"}, SkillCategories: []string{"business", "soft"}},
			{Canonical: "Finance", Variants: []string{"Banking and Finance", "Financial Management"}, Category: "business", RelatedIndustries: []string{"Banking", "Finance", "Fintech"}, SkillCategories: []string{"business", "data"}},
			{Canonical: "Accounting", Variants: []string{"Accountancy", "Acct"}, Category: "business", RelatedIndustries: []string{"Finance", "Audit"}, SkillCategories: []string{"business", "tools"}},
			{Canonical: "Marketing", Variants: []string{"Digital Marketing", "Mkt"}, Category: "business", RelatedIndustries: []string{"Advertising", "Retail", "Media"}, SkillCategories: []string{"business", "soft"}},
			{Canonical: "Economics", Variants: []string{"Econ"}, Category: "business", RelatedIndustries: []string{"Banking", "Government", "Research"}, SkillCategories: []string{"data", "business"}},
			{Canonical: "International Business", Variants: []string{"Intl Business"}, Category: "business", RelatedIndustries: []string{"Trade", "Logistics"}, SkillCategories: []string{"business"}},
			{Canonical: "Human Resources", Variants: []string{"HR", "HRM", "Human Resource Management"}, Category: "business", RelatedIndustries: []string{"Consulting", "Government"}, SkillCategories: []string{"soft"}},
			{Canonical: "Medicine", Variants: []string{"MBBS", "MD", "Medical"}, Category: "health", RelatedIndustries: []string{"Healthcare"}, SkillCategories: []string{"health"}},
			{Canonical: "Nursing", Variants: []string{"BSN"}, Category: "health", RelatedIndustries: []string{"Healthcare"}, SkillCategories: []string{"health"}},
			{Canonical: "Pharmacy", Variants: []string{"PharmD", "Pharmaceutical Sciences"}, Category: "health", RelatedIndustries: []string{"Healthcare", "Pharmaceuticals"}, SkillCategories: []string{"health"}},
			{Canonical: "Psychology", Variants: []string{"Psych"}, Category: "social_sciences", RelatedIndustries: []string{"Healthcare", "Education"}, SkillCategories: []string{"soft"}},
			{Canonical: "Mass Communication", Variants: []string{"Mass Comm", "Media", "Journalism", "Communications"}, Category: "media", RelatedIndustries: []string{"Media", "Advertising"}, SkillCategories: []string{"soft", "creative"}},
			{Canonical: "Graphic Design", Variants: []string{"Visual Communication", "Visual Design"}, Category: "creative", RelatedIndustries: []string{"Advertising", "Media"}, SkillCategories: []string{"creative", "tools"}},
			{Canonical: "Architecture", Variants: []string{"Arch", "Interior Design"}, Category: "creative", RelatedIndustries: []string{"Construction", "Real Estate"}, SkillCategories: []string{"creative", "engineering"}},
			{Canonical: "Law", Variants: []string{"LLB", "Legal Studies"}, Category: "law", RelatedIndustries: []string{"Legal", "Government"}, SkillCategories: []string{"soft"}},
			{Canonical: "Education", Variants: []string{"Teaching", "BEd"}, Category: "education", RelatedIndustries: []string{"Education"}, SkillCategories: []string{"soft"}},
			{Canonical: "Mathematics", Variants: []string{"Math", "Maths"}, Category: "science", RelatedIndustries: []string{"Research", "Finance"}, SkillCategories: []string{"data"}},
			{Canonical: "Biology", Variants: []string{"Bio", "Biological Sciences"}, Category: "science", RelatedIndustries: []string{"Healthcare", "Research"}, SkillCategories: []string{"health"}},
			{Canonical: "Physics", Variants: []string{"Applied Physics"}, Category: "science", RelatedIndustries: []string{"Research", "Energy"}, SkillCategories: []string{"data"}},
			{Canonical: "Chemistry", Variants: []string{"Chem"}, Category: "science", RelatedIndustries: []string{"Pharmaceuticals", "Oil and Gas"}, SkillCategories: []string{"health"}},
		},
		Skills: []SkillMapping{
			{Canonical: "Python", Variants: []string{"Py", "Python3"}, Category: "programming", Related: []string{"Data Analysis", "Machine Learning"}},
			{Canonical: "Java", Variants: []string{"Core Java", "J2EE"}, Category: "programming", Related: []string{"Spring"}},
			{Canonical: "JavaScript", Variants: []string{"JS", "ES6"}, Category: "programming", Related: []string{"React", "Node.js", "TypeScript"}},
			{Canonical: "TypeScript", Variants: []string{"TS"}, Category: "programming", Related: []string{"JavaScript"}},
			{Canonical: "Go", Variants: []string{"Golang"}, Category: "programming", Related: []string{"Cloud"}},
			{Canonical: "C++", Variants: []string{"CPP"}, Category: "programming", Related: []string{"C"}},
			{Canonical: "C#", Variants: []string{"CSharp", "C Sharp", ".NET", "dotnet"}, Category: "programming", Related: []string{"ASP.NET"}},
			{Canonical: "SQL", Variants: []string{"MySQL", "PostgreSQL", "Structured Query Language"}, Category: "data", Related: []string{"Data Analysis"}},
			{Canonical: "React", Variants: []string{"ReactJS", "React.js"}, Category: "programming", Related: []string{"JavaScript"}},
			{Canonical: "Node.js", Variants: []string{"Node", "NodeJS"}, Category: "programming", Related: []string{"JavaScript"}},
			{Canonical: "Machine Learning", Variants: []string{"ML", "Deep Learning"}, Category: "data", Related: []string{"Python", "Data Analysis"}},
			{Canonical: "Data Analysis", Variants: []string{"Data Analytics", "Data Analyst"}, Category: "data", Related: []string{"SQL", "Excel", "Python"}},
			{Canonical: "Excel", Variants: []string{"Microsoft Excel", "MS Excel", "Advanced Excel"}, Category: "tools", Related: []string{"Data Analysis"}},
			{Canonical: "PowerPoint", Variants: []string{"MS PowerPoint", "Microsoft PowerPoint"}, Category: "tools", Related: []string{"Communication"}},
			{Canonical: "Microsoft Office", Variants: []string{"MS Office", "Office 365"}, Category: "tools", Related: []string{"Excel", "PowerPoint"}},
			{Canonical: "Tableau", Variants: []string{"Tableau Desktop"}, Category: "data", Related: []string{"Power BI"}},
			{Canonical: "Power BI", Variants: []string{"PowerBI"}, Category: "data", Related: []string{"Tableau", "Excel"}},
			{Canonical: "AutoCAD", Variants: []string{"Auto CAD"}, Category: "engineering", Related: []string{"Revit"}},
			{Canonical: "Photoshop", Variants: []string{"Adobe Photoshop"}, Category: "creative", Related: []string{"Illustrator", "Figma"}},
			{Canonical: "Figma", Variants: []string{"Figma Design"}, Category: "creative", Related: []string{"UI Design"}},
			{Canonical: "Project Management", Variants: []string{"PMP", "Project Planning"}, Category: "business", Related: []string{"Leadership"}},
			{Canonical: "Digital Marketing", Variants: []string{"Online Marketing", "Social Media Marketing"}, Category: "business", Related: []string{"SEO"}},
			{Canonical: "SEO", Variants: []string{"Search Engine Optimization"}, Category: "business", Related: []string{"Digital Marketing"}},
			{Canonical: "Financial Analysis", Variants: []string{"Financial Modeling", "Financial Modelling"}, Category: "business", Related: []string{"Excel"}},
			{Canonical: "Sales", Variants: []string{"B2B Sales", "Business Development"}, Category: "business", Related: []string{"Communication"}},
			{Canonical: "Customer Service", Variants: []string{"Customer Support", "Client Service"}, Category: "soft", Related: []string{"Communication"}},
			{Canonical: "Communication", Variants: []string{"Communication Skills", "Public Speaking"}, Category: "soft", Related: []string{"Teamwork"}},
			{Canonical: "Leadership", Variants: []string{"Team Leadership", "People Management"}, Category: "soft", Related: []string{"Project Management"}},
			{Canonical: "Teamwork", Variants: []string{"Team Work", "Team Player", "Collaboration"}, Category: "soft", Related: []string{"Communication"}},
			{Canonical: "Problem Solving", Variants: []string{"Critical Thinking", "Analytical Skills"}, Category: "soft", Related: []string{"Data Analysis"}},
			{Canonical: "Research", Variants: []string{"Academic Research", "Research Skills"}, Category: "soft", Related: []string{"Data Analysis"}},
			{Canonical: "Arabic", Variants: []string{"Arabic Language", "Native Arabic"}, Category: "language", Related: []string{"English"}},
			{Canonical: "English", Variants: []string{"English Language", "Fluent English"}, Category: "language", Related: []string{"Arabic"}},
			{Canonical: "French", Variants: []string{"French Language"}, Category: "language", Related: []string{"English"}},
		},
		Locations: []LocationMapping{
			{Canonical: "United Arab Emirates", Variants: []string{"UAE", "Emirates", "U.A.E"}, Category: "country", Country: "United Arab Emirates"},
			{Canonical: "Dubai", Variants: []string{"DXB", "Dubai UAE", "Dubayy"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Abu Dhabi", Variants: []string{"AUH", "AbuDhabi", "Abu Dhabi City"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Sharjah", Variants: []string{"SHJ", "Sharjah City"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Ajman", Variants: []string{"Ajman City"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Ras Al Khaimah", Variants: []string{"RAK", "Ras al-Khaimah Emirate"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Fujairah", Variants: []string{"Fujairah City"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Umm Al Quwain", Variants: []string{"UAQ"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Al Ain", Variants: []string{"AlAin"}, Category: "emirate", Country: "United Arab Emirates"},
			{Canonical: "Saudi Arabia", Variants: []string{"KSA", "Saudi"}, Category: "country", Country: "Saudi Arabia"},
			{Canonical: "Riyadh", Variants: []string{"RUH"}, Category: "gcc_city", Country: "Saudi Arabia"},
			{Canonical: "Jeddah", Variants: []string{"Jiddah", "JED"}, Category: "gcc_city", Country: "Saudi Arabia"},
			{Canonical: "Doha", Variants: []string{"Doha Qatar", "Qatar"}, Category: "gcc_city", Country: "Qatar"},
			{Canonical: "Muscat", Variants: []string{"Oman", "Muscat Oman"}, Category: "gcc_city", Country: "Oman"},
			{Canonical: "Kuwait City", Variants: []string{"Kuwait"}, Category: "gcc_city", Country: "Kuwait"},
			{Canonical: "Manama", Variants: []string{"Bahrain"}, Category: "gcc_city", Country: "Bahrain"},
			{Canonical: "London", Variants: []string{"London UK"}, Category: "international_city", Country: "United Kingdom"},
			{Canonical: "Cairo", Variants: []string{"Cairo Egypt"}, Category: "international_city", Country: "Egypt"},
			{Canonical: "Amman", Variants: []string{"Amman Jordan"}, Category: "international_city", Country: "Jordan"},
			{Canonical: "Beirut", Variants: []string{"Beirut Lebanon"}, Category: "international_city", Country: "Lebanon"},
			{Canonical: "Mumbai", Variants: []string{"Bombay"}, Category: "international_city", Country: "India"},
			{Canonical: "Karachi", Variants: []string{"Karachi Pakistan"}, Category: "international_city", Country: "Pakistan"},
			{Canonical: "Remote", Variants: []string{"Work From Home", "WFH", "Anywhere"}, Category: "remote", Country: ""},
		},
	}
}
