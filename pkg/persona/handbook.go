package persona

// HandbookEntry describes one scam tactic: what it is, what a real
// victim should do, and what they should never do. The ordered category
// labels form the closed taxonomy the classifier must choose from.
type HandbookEntry struct {
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Dos         []string `yaml:"dos" json:"dos"`
	Donts       []string `yaml:"donts" json:"donts"`
}

var defaultHandbook = []HandbookEntry{
	{
		Category:    "KYC Scam",
		Description: "Fraudsters exploit identity verification processes to steal personal information or access financial accounts illegally.",
		Dos: []string{
			"Contact your bank directly to confirm KYC update requests.",
			"Use official contact details from official websites.",
			"Inform bank immediately if you suspect fraud.",
			"Enquire with bank about available KYC update methods.",
		},
		Donts: []string{
			"Never share PINs, passwords, or OTPs with anyone.",
			"Do not share KYC documents with unidentified individuals.",
			"Do not click on suspicious links in SMS or email.",
		},
	},
	{
		Category:    "Online Job Scam",
		Description: "Fake jobs offering high pay and easy work to steal money or personal information.",
		Dos: []string{
			"Use trusted sources like newspapers or government portals.",
			"Verify company credentials for international offers.",
			"Ask detailed questions during online interviews.",
			"Verify email addresses for mimicry (e.g., .net vs .com).",
		},
		Donts: []string{
			"Do not pay upfront consulting fees.",
			"Do not trust sponsored search results blindly.",
			"Never apply without verifying advertisement authenticity.",
		},
	},
	{
		Category:    "Online Shopping Fraud",
		Description: "Fake websites or deals used to steal personal and financial information.",
		Dos: []string{
			"Compare prices on different websites.",
			"Opt for Cash-on-Delivery if suspicious.",
			"Prefer Verified/Trusted sellers.",
			"Be cautious of 'too good to be true' offers.",
		},
		Donts: []string{
			"Never enter PIN/OTP to receive money.",
			"Avoid public networks for transactions.",
			"Do not save card details on unreliable sites.",
			"Do not scan QR codes to 'receive' money.",
		},
	},
	{
		Category:    "Digital Arrest",
		Description: "Scammers impersonate government officials to restrict/detain victims via video call to extort money.",
		Dos: []string{
			"Know that police/officials never interrogate via video calls.",
			"Report suspect calls on cybercrime.gov.in.",
			"Stay calm and understand there is no such thing as Digital Arrest in India.",
		},
		Donts: []string{
			"Do not share personal info or send money on video calls.",
			"Do not engage for long in suspicious video calls.",
			"Do not trust unverified calls claiming to be authorities.",
		},
	},
	{
		Category:    "Investment Scam",
		Description: "Fraudulent schemes (Ponzi) promising high returns with no risk.",
		Dos: []string{
			"Deal only with SEBI-registered intermediaries.",
			"Invest through regulated financial entities.",
			"Follow trusted information sources.",
		},
		Donts: []string{
			"Do not trust unbelievable returns.",
			"Stay away from social media groups promoting trading apps.",
			"Do not ignore red flags like consistent high returns.",
		},
	},
	{
		Category:    "Online Gaming",
		Description: "Attackers exploit platforms for virtual theft, financial fraud, and identity theft.",
		Dos: []string{
			"Supervise gaming access for children.",
			"Be cautious with real money gaming apps.",
			"Check app permissions (Contacts, Storage, Location).",
		},
		Donts: []string{
			"Do not download apps from unreliable sources.",
			"Do not share confidential info with fellow players.",
			"Avoid oversharing achievements on social media.",
		},
	},
	{
		Category:    "Lottery Fraud",
		Description: "Deceiving people into believing they've won a prize to trick them into sending money.",
		Dos: []string{
			"Question unsolicited claims of winning.",
			"Report fraud to authorities.",
			"Stay skeptical: no one gives huge money for free.",
		},
		Donts: []string{
			"Never pay taxes/fees to claim a prize.",
			"Do not share credentials for lottery claims.",
			"Ignore offers promising govt aid or prizes.",
		},
	},
	{
		Category:    "Phishing",
		Description: "Fake links designed to steal data or install malware.",
		Dos: []string{
			"Check URLs by hovering to reveal destination.",
			"Verify senders through trusted methods.",
			"Keep software and systems up-to-date.",
		},
		Donts: []string{
			"Do not click on suspicious links; delete the message.",
			"Unsubscribe from emails with suspicious links.",
			"Always go directly to official websites.",
		},
	},
	{
		Category:    "Spam/Vishing Calls",
		Description: "Voice phishing using social engineering to trick victims.",
		Dos: []string{
			"Use call-blocking apps.",
			"Exercise caution with unknown numbers.",
			"Use voicemail passwords.",
		},
		Donts: []string{
			"Never share info with unknown callers.",
			"Do not trust Caller ID (can be spoofed).",
			"Avoid returning calls to unfamiliar international numbers.",
		},
	},
	{
		Category:    "Quishing",
		Description: "Malicious QR codes redirecting to phishing sites or initiating unauthorized transfers.",
		Dos: []string{
			"Only scan QR codes from official/verified sources.",
			"Take time to verify QR-led requests.",
			"Report suspicious codes.",
		},
		Donts: []string{
			"Never scan QR codes to receive money.",
			"Avoid scanning codes for payments without verifying.",
			"Do not scan codes from unknown texts/emails.",
		},
	},
	{
		Category:    "Search Engine Fraud",
		Description: "Manipulating search results to display fake contact info for legitimate entities.",
		Dos: []string{
			"Always check official websites for contact details.",
			"Double-check numbers using trusted directories.",
			"Watch for red flags like urgency or scare tactics.",
		},
		Donts: []string{
			"Never call numbers listed in search results blindly.",
			"Only share details if you initiated the contact.",
		},
	},
	{
		Category:    "Social Media Impersonation",
		Description: "Fake accounts mimicking real people/orgs to deceive others.",
		Dos: []string{
			"Verify accounts (blue checks, consistent usernames).",
			"Report impersonation to the platform.",
			"Confirm fund requests from friends via a call.",
		},
		Donts: []string{
			"Avoid paying unknown individuals online.",
			"Never share confidential details on social media.",
		},
	},
	{
		Category:    "SMS, Email & Call Scams",
		Description: "Impersonating trusted NBFCs/Lenders with fake offers.",
		Dos: []string{
			"Cross-check sender details with official sources.",
			"Forward fake messages to reporting channels.",
			"Report suspicious loan offers.",
		},
		Donts: []string{
			"Never trust unsolicited loan offers.",
			"Do not pay upfront fees for loan processing.",
			"Do not open attachments from unknown sources.",
		},
	},
	{
		Category:    "Debit/Credit Card Fraud",
		Description: "Unauthorized transactions using stolen card details or phishing.",
		Dos: []string{
			"Deactivate unused features (NFC, International).",
			"Keep card in sight and shield PIN.",
			"Check POS machine for skimming devices.",
		},
		Donts: []string{
			"Never share card info or PIN.",
			"Do not store/save PIN in accessible places.",
			"Avoid card use on unsecured public Wi-Fi.",
		},
	},
	{
		Category:    "Mobile App APK Scam",
		Description: "Fake banking apps distributed via links to steal credentials.",
		Dos: []string{
			"Download apps only from official stores.",
			"Enable Two-Factor Authentication (2FA).",
			"Regularly monitor bank statements.",
		},
		Donts: []string{
			"Do not download from unofficial links.",
			"Do not jailbreak/root your device.",
			"Never share PIN/OTP with 'support' staff.",
		},
	},
	{
		Category:    "Cyber Slavery",
		Description: "Exploitation through digital platforms, coerced/forced labor.",
		Dos: []string{
			"Apply through government-approved agencies only.",
			"Verify job legitimacy before accepting.",
			"Report exploitation on cybercrime.gov.in.",
		},
		Donts: []string{
			"Do not trust 'easy money/high pay' online offers.",
			"Never use a tourist visa for work in foreign countries.",
			"Avoid ads from unknown groups on social media.",
		},
	},
	{
		Category:    "Sim Swapping",
		Description: "Transferring phone number to fraudster's SIM to access 2FA codes.",
		Dos: []string{
			"Contact provider if you lose network access unexpectedly.",
			"Use unique, strong PINs for your SIM.",
			"Enable multi-factor security.",
		},
		Donts: []string{
			"Never share OTPs or identity details via calls.",
			"Do not ignore extended loss of network.",
		},
	},
	{
		Category:    "Money Mules",
		Description: "Using individuals to receive/transfer stolen money for commission.",
		Dos: []string{
			"Research legitimacy of jobs involving money transfers.",
			"Report suspect schemes to authorities.",
			"Understand that laundering stolen funds is a crime.",
		},
		Donts: []string{
			"Never let others use your account for transfers.",
			"Reject offers to handle unauthorized money for a fee.",
		},
	},
	{
		Category:    "Juice Jacking",
		Description: "Compromised public USB charging stations used to install malware.",
		Dos: []string{
			"Carry your own charger and cable.",
			"Choose AC outlets over USB ports.",
			"Be cautious of 'trust this device' prompts.",
		},
		Donts: []string{
			"Do not use unknown public USB ports.",
		},
	},
	{
		Category:    "Deepfake Cybercrime",
		Description: "Advanced AI used to create fake media for manipulation or false info.",
		Dos: []string{
			"Check authenticity of media before sharing.",
			"Rely on reputable platforms for news.",
			"Report potential deepfakes to platforms.",
		},
		Donts: []string{
			"Do not trust content that seems exaggerated.",
			"Limit personal info sharing to avoid being a target.",
		},
	},
	{
		Category:    "Remote Access Fraud",
		Description: "Trick victims into granting screen-sharing access to steal data.",
		Dos: []string{
			"Confirm caller identity independently.",
			"Only install screen-sharing apps if required.",
			"Uninstall app immediately after use.",
		},
		Donts: []string{
			"Never grant remote access to unknown people.",
			"Log out of payment apps before sharing screen.",
			"Avoid entering credentials during screen access.",
		},
	},
	{
		Category:    "Secure Browsing",
		Description: "Protecting against online threats while surfing.",
		Dos: []string{
			"Use updated browsers and HTTPS sites.",
			"Install trusted antivirus and enable firewalls.",
			"Verify URLs before entering info.",
		},
		Donts: []string{
			"Avoid public Wi-Fi without protection.",
			"Do not save passwords on public devices.",
			"Skip websites with browser warnings.",
		},
	},
	{
		Category:    "Ransomware",
		Description: "Malware that locks files and demands ransom for decryption.",
		Dos: []string{
			"Regularly back up data.",
			"Isolate affected systems immediately.",
			"Keep software up to date.",
		},
		Donts: []string{
			"Do not pay the ransom.",
			"Do not run backups during an attack.",
		},
	},
	{
		Category:    "Smartphone Scams",
		Description: "Fake calls, malicious apps, and SIM fraud targeting mobile users.",
		Dos: []string{
			"Report lost/stolen phones immediately.",
			"Regularly check SIM registrations in your name.",
			"Enable 'Silence Unknown Callers' on WhatsApp.",
		},
		Donts: []string{
			"Never attend or engage with spam calls.",
			"Do not exceed the allowed limit of SIMs (9).",
		},
	},
	{
		Category:    "Medicare Card Scam",
		Description: "Scammers claim to be from Medicare's new card department to steal SSN, DOB, and bank details.",
		Dos: []string{
			"Wait for your card to arrive in the mail (Medicare won't call you about it).",
			"Call 1-800-MEDICARE if you have questions about your card.",
			"Keep your Medicare card safe like a credit card.",
		},
		Donts: []string{
			"Never give your SSN, bank info, or DOB to an unsolicited caller.",
			"Medicare will never call you to sell you anything or verify info for a 'new' card.",
			"Do not give out your 'badge number' if asked; it's a common scam tactic.",
		},
	},
}
