package scheme

import "time"

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var (
	docAadhaar     = Document{Name: "Aadhaar Card", URL: "/documents/aadhar_card.png"}
	docPAN         = Document{Name: "PAN Card", URL: "/documents/pan_card.png"}
	docIncome      = Document{Name: "Income Certificate", URL: "/documents/income_certificate.png"}
	docCaste       = Document{Name: "Caste Certificate", URL: "/documents/caste_certificate.png"}
	docEducational = Document{Name: "Educational Certificates", URL: "/documents/educational_certificates.png"}
)

func builtin() []Scheme {
	return []Scheme{
		{
			ID:          "pm-kisan",
			Name:        "PM-KISAN (Pradhan Mantri Kisan Samman Nidhi)",
			Description: "Direct income support scheme for farmers providing ₹6,000 per year in three installments",
			Category:    CategoryAgriculture,
			TargetGroup: "Small and marginal farmers with landholding up to 2 hectares",
			Eligibility: []string{
				"Small and marginal farmer families",
				"Landholding up to 2 hectares",
				"Name in land records",
				"Aadhaar mandatory",
			},
			Benefits:  "₹6,000 per year (₹2,000 every 4 months)",
			Documents: []Document{docAadhaar, docPAN, docIncome},
			HowToApply: []string{
				"Visit PM-KISAN portal or CSC center",
				"Fill application form with personal details",
				"Upload required documents",
				"Submit and get registration number",
			},
			Contact:  Contact{Name: "PM-KISAN Helpdesk", Number: "155261", Email: "pmkisan-ict@gov.in"},
			Keywords: []string{"farmer", "agriculture", "income support", "pm kisan", "kisan samman"},
			Deadline: date(2025, time.August, 30),
		},
		{
			ID:          "ayushman-bharat",
			Name:        "Ayushman Bharat - Pradhan Mantri Jan Arogya Yojana (AB-PMJAY)",
			Description: "Health insurance scheme providing free treatment up to ₹5 lakh per family per year",
			Category:    CategoryHealthcare,
			TargetGroup: "Poor and vulnerable families as per SECC 2011 database",
			Eligibility: []string{
				"Families listed in SECC 2011",
				"Automatic eligibility for eligible families",
				"No premium payment required",
				"Covers both rural and urban families",
			},
			Benefits:  "Health coverage up to ₹5 lakh per family per year",
			Documents: []Document{docAadhaar, docPAN},
			HowToApply: []string{
				"Check eligibility on official website",
				"Visit empaneled hospital",
				"Get Golden Card issued",
				"Avail cashless treatment",
			},
			Contact:  Contact{Name: "Ayushman Bharat Helpdesk", Number: "14555", Email: "support@pmjay.gov.in"},
			Keywords: []string{"health", "insurance", "ayushman", "medical", "treatment", "hospital"},
			Deadline: date(2025, time.September, 15),
		},
		{
			ID:          "ujjwala",
			Name:        "Pradhan Mantri Ujjwala Yojana (PMUY)",
			Description: "LPG connection scheme for women from BPL households",
			Category:    CategoryEnergy,
			TargetGroup: "Women from Below Poverty Line (BPL) families",
			Eligibility: []string{
				"Woman should be above 18 years",
				"BPL family member",
				"No LPG connection in household",
				"Bank account in woman's name",
			},
			Benefits:  "Free LPG connection with deposit-free cylinder and regulator",
			Documents: []Document{docAadhaar, docCaste},
			HowToApply: []string{
				"Visit nearest LPG distributor",
				"Fill PMUY application form",
				"Submit required documents",
				"Get connection within 10-15 days",
			},
			Contact:  Contact{Name: "Ujjwala Yojana Helpline", Number: "1906", Email: "support@pmuy.gov.in"},
			Keywords: []string{"lpg", "gas", "ujjwala", "cooking", "women", "connection"},
			Deadline: date(2025, time.July, 31),
		},
		{
			ID:          "swachh-bharat",
			Name:        "Swachh Bharat Mission - Gramin (SBM-G)",
			Description: "Rural sanitation programme providing toilet construction incentives",
			Category:    CategorySanitation,
			TargetGroup: "Rural households without toilets",
			Eligibility: []string{
				"Rural household without toilet",
				"Family name in gram panchayat list",
				"Not beneficiary of previous toilet schemes",
				"Willing to contribute for construction",
			},
			Benefits:  "₹12,000 incentive for toilet construction",
			Documents: []Document{docAadhaar},
			HowToApply: []string{
				"Apply through Gram Panchayat",
				"Get name included in beneficiary list",
				"Construct toilet as per guidelines",
				"Get verification and receive incentive",
			},
			Contact:  Contact{Name: "Swachh Bharat Mission", Email: "support@sbm.gov.in"},
			Keywords: []string{"toilet", "sanitation", "swachh bharat", "hygiene", "rural"},
		},
		{
			ID:          "pmay-gramin",
			Name:        "Pradhan Mantri Awaas Yojana - Gramin (PMAY-G)",
			Description: "Housing scheme for rural poor providing assistance for house construction",
			Category:    CategoryHousing,
			TargetGroup: "Rural poor households without a pucca house",
			Eligibility: []string{
				"Houseless or living in kutcha house",
				"Family should not own a pucca house",
				"Selection based on SECC 2011 data",
				"Land ownership or government allotment",
			},
			Benefits:  "Financial assistance for house construction up to ₹1.2 lakh (plains) / ₹1.3 lakh (hilly areas)",
			Documents: []Document{docAadhaar, docIncome},
			HowToApply: []string{
				"Registration through Gram Sabha",
				"Verification of beneficiaries",
				"Construction in phases",
				"Payment in installments on completion",
			},
			Contact:  Contact{Name: "PMAY-G Helpdesk", Email: "support@pmayg.nic.in"},
			Keywords: []string{"house", "housing", "pmay", "construction", "rural", "shelter"},
		},
		{
			ID:          "jandhan",
			Name:        "Pradhan Mantri Jan Dhan Yojana (PMJDY)",
			Description: "Financial inclusion scheme for zero balance bank accounts",
			Category:    CategoryFinancialInclusion,
			TargetGroup: "All unbanked citizens",
			Eligibility: []string{
				"Indian citizen",
				"Age above 10 years",
				"No other bank account",
				"Simplified KYC process",
			},
			Benefits:  "Zero balance account, RuPay debit card, accident insurance cover of ₹1 lakh",
			Documents: []Document{docAadhaar, docPAN},
			HowToApply: []string{
				"Visit nearest bank branch or Bank Mitra",
				"Fill account opening form",
				"Submit identity and address proof",
				"Get account opened immediately",
			},
			Contact:  Contact{Name: "Jan Dhan Yojana Helpdesk", Email: "support@pmjdy.gov.in"},
			Keywords: []string{"bank account", "jan dhan", "financial inclusion", "zero balance", "insurance"},
		},
		{
			ID:          "pension-scheme",
			Name:        "Pradhan Mantri Shram Yogi Maan-dhan (PM-SYM)",
			Description: "Pension scheme for unorganized workers with monthly pension of ₹3,000",
			Category:    CategorySocialSecurity,
			TargetGroup: "Unorganized workers aged 18-40 years",
			Eligibility: []string{
				"Age between 18-40 years",
				"Monthly income ≤ ₹15,000",
				"Not covered under EPF/ESIC/NPS",
				"Aadhaar and bank account mandatory",
			},
			Benefits:  "Monthly pension of ₹3,000 after 60 years",
			Documents: []Document{docAadhaar, docIncome},
			HowToApply: []string{
				"Visit CSC center",
				"Fill enrollment form",
				"Make first contribution",
				"Get scheme acknowledgment",
			},
			Contact:  Contact{Name: "Maan-dhan Helpdesk", Number: "14434", Email: "support@maandhan.in"},
			Keywords: []string{"pension", "retirement", "shram yogi", "unorganized worker", "old age"},
		},
		{
			ID:          "scholarship",
			Name:        "Post Matric Scholarship for SC/ST/OBC",
			Description: "Educational scholarship for students from SC/ST/OBC communities",
			Category:    CategoryEducation,
			TargetGroup: "SC/ST/OBC students pursuing post-matric education",
			Eligibility: []string{
				"Student from SC/ST/OBC category",
				"Family income limits as per category",
				"Enrolled in recognized institution",
				"Not beneficiary of other scholarships",
			},
			Benefits:  "Tuition fees, maintenance allowance, and other educational expenses",
			Documents: []Document{docAadhaar, docCaste, docIncome, docEducational},
			HowToApply: []string{
				"Apply online on National Scholarship Portal",
				"Fill personal and academic details",
				"Upload required documents",
				"Submit application before deadline",
			},
			Contact:  Contact{Name: "National Scholarship Portal", Email: "helpdesk@nsp.gov.in"},
			Keywords: []string{"scholarship", "education", "student", "sc st obc", "study", "fees"},
		},
		{
			ID:          "mudra-loan",
			Name:        "Pradhan Mantri MUDRA Yojana",
			Description: "Micro-finance scheme for small businesses and entrepreneurs",
			Category:    CategoryBusiness,
			TargetGroup: "Micro, small entrepreneurs and business persons",
			Eligibility: []string{
				"Indian citizen",
				"Business plan for non-agricultural activities",
				"No existing loan default",
				"Age 18 years and above",
			},
			Benefits:  "Loans up to ₹10 lakh without collateral",
			Documents: []Document{docAadhaar, docPAN},
			HowToApply: []string{
				"Prepare business plan",
				"Visit bank or NBFC",
				"Submit loan application with documents",
				"Get loan approval and disbursement",
			},
			Contact:  Contact{Name: "MUDRA Helpdesk", Email: "support@mudra.org.in"},
			Keywords: []string{"loan", "business", "mudra", "entrepreneur", "micro finance", "startup"},
		},
		{
			ID:          "maternity-benefit",
			Name:        "Pradhan Mantri Matru Vandana Yojana (PMMVY)",
			Description: "Maternity benefit scheme providing cash incentive to pregnant and lactating women",
			Category:    CategoryWomenChild,
			TargetGroup: "Pregnant and lactating women (first living child)",
			Eligibility: []string{
				"Pregnant and lactating women",
				"First living child",
				"Age 19 years and above",
				"Not receiving similar benefits under other schemes",
			},
			Benefits:  "₹5,000 in three installments during pregnancy and after delivery",
			Documents: []Document{docAadhaar},
			HowToApply: []string{
				"Register at Anganwadi Center/Health facility",
				"Get antenatal check-ups as scheduled",
				"Fulfill conditions for each installment",
				"Receive direct benefit transfer in bank account",
			},
			Contact:  Contact{Name: "PMMVY Helpdesk", Email: "support@pmmvy.gov.in"},
			Keywords: []string{"maternity", "pregnancy", "women", "child", "mother", "delivery", "cash benefit"},
		},
	}
}
