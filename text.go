package main

// Section anchors, in navigation order. The ids are used by the nav links
// and must stay unique.
var Sections = []string{"home", "projects", "experience", "about", "contact"}

// expandThreshold is the description length above which an experience
// card collapses behind a "Read more" toggle.
const expandThreshold = 150

type Project struct {
	Title       string
	Description string
	Tags        []string
	Icon        string // lucide icon name
}

type Experience struct {
	Title       string
	Company     string
	Period      string
	Description string
	Skills      []string
}

// Expandable reports whether the card needs a "Read more" toggle.
func (e Experience) Expandable() bool {
	return len([]rune(e.Description)) > expandThreshold
}

type SocialLink struct {
	Platform string
	URL      string
}

type ContactInfo struct {
	Icon  string
	Label string
	Value string
}

type Portfolio struct {
	Brand        string
	Name         string
	Headline     string
	Roles        []string // typewriter phrases
	Intro        string
	ProjectsLead string
	Projects     []Project
	WorkLead     string
	Experience   []Experience
	About        []string
	Socials      []SocialLink
	ContactLead  string
	Contact      []ContactInfo
	Tagline      string
}

var (
	linkedIn = SocialLink{Platform: "LinkedIn", URL: "https://www.linkedin.com/in/vaibhavsidana/"}
	youTube  = SocialLink{Platform: "Youtube", URL: "https://www.youtube.com/@HackWsid"}
)

var Content = Portfolio{
	Brand:    "VAIBHAV.DEV",
	Name:     "Vaibhav Sidana",
	Headline: "Full-Stack Developer",
	Roles:    []string{"UI/UX Designer", "Cybersecurity enthusiast", "Tech Innovator"},
	Intro: `Creating cutting-edge web experiences with a focus on performance,
	animation, and futuristic design interfaces.`,

	ProjectsLead: "A selection of my latest work spanning web applications designs, Cybersecurity tools, and experimental interfaces.",
	Projects: []Project{
		{
			Title:       "Distributed Intrusion Detection System",
			Description: "A decentralized system for real-time monitoring and detection of network intrusions.",
			Tags:        []string{"Python", "Network management"},
			Icon:        "monitor",
		},
		{
			Title:       "Cracked Code",
			Description: "Undetectable AI-Powered Interview Assistant",
			Tags:        []string{"React", "electron.js", "mongoDB", "TypeScript"},
			Icon:        "layers",
		},
	},

	WorkLead: "My professional journey in the tech industry, showcasing a blend of development and cybersecurity expertise.",
	Experience: []Experience{
		{
			Title:   "Cybersecurity Consultant",
			Company: "IIT Goa",
			Period:  "2023",
			Description: `Discovered and ethically reported 3 critical vulnerability in the academic portal that exposed login credentials of users in real-time.
	Identified and exploited 3 misconfigured printers that posed a security risk; provided mitigation steps and secured network access controls.
	Correctly Configured and safeguarded 7 routers, 3 printers and 4 web-pages in the college network`,
			Skills: []string{"Wireshark", "Linux", "Bettercap"},
		},
		{
			Title:   "Bug Bounty & Security Research for GoGrab",
			Company: "GoGrab",
			Period:  "2023",
			Description: `Received Rs 3000 by discovering 3 critical vulnerabilities allowing item dispensing via unauthorized mobile commands.
	Reported the issue through responsible disclosure, helping prevent substantial financial losses.
	Partnered with the vendor’s engineering team to diagnose root causes and fixed 3 exposed API’s`,
			Skills: []string{"burpsuite", "express.js", "reverse-engineering"},
		},
	},

	About: []string{
		`I'm a full-stack developer with a passion for creating dynamic and responsive web applications.
	I am also a cybersecurity enthusiast and have a keen interest in building tools that enhance user experience and security.`,
		"My journey began with traditional web development but quickly evolved into a passion for cybersecurity",
		"When I'm not coding, you can find me exploring emerging technologies, contributing to open-source projects or making videos for my youtube channel.",
	},
	Socials: []SocialLink{linkedIn, youTube},

	ContactLead: "Interested in working together? I'm always open to discussing new projects, creative ideas, or opportunities to be part of your vision.",
	Contact: []ContactInfo{
		{Icon: "mail", Label: "Email", Value: "vaibhav.sidana.23031@iitgoa.ac.in"},
		{Icon: "external-link", Label: "Location", Value: "Goa, India"},
	},
	Tagline: "Designing the future of the web, one pixel at a time",
}
