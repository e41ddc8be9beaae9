package session

// Script is a canned response the user can copy and read to the caller.
type Script struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Scripts is the response script library.
var Scripts = []Script{
	{ID: "pause", Text: "ขอทำขั้นตอนยืนยัน 30 วินาทีก่อนนะครับ เพื่อความปลอดภัย"},
	{ID: "callback", Text: "ผมจะโทรกลับเบอร์ทางการที่บันทึกไว้ในระบบนะครับ"},
	{ID: "otp", Text: "เรื่อง OTP/รหัส ผมไม่ให้ผ่านสายครับ เดี๋ยวผมยืนยันผ่านช่องทางทางการแทน"},
}

// QuickScripts are offered on the collapsed bubble.
func QuickScripts() []Script {
	return Scripts[:2]
}

func findScript(id string) (Script, bool) {
	for _, s := range Scripts {
		if s.ID == id {
			return s, true
		}
	}
	return Script{}, false
}

// ChallengePresets are liveness prompts for the caller.
var ChallengePresets = []string{
	"พูดเลขสุ่ม 4 ตัวที่ขึ้นบนหน้าจอ",
	"อ่านประโยคสุ่ม: ‘วันนี้อากาศดี แต่เราต้องยืนยัน’",
	"หันซ้าย-ขวา + กระพริบตา 2 ครั้ง",
	"ยกมือแตะหูซ้ายแล้วพูดช้า ๆ ว่า ‘ยืนยันตัวตน’",
	"อ่านตัวอักษรสุ่ม: A-7-K-2",
}

// Contact is an entry in the trusted call-back directory.
type Contact struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Number string `yaml:"number" json:"number"`
}

// DefaultDirectory is used when no directory is configured.
var DefaultDirectory = []Contact{
	{ID: "bank", Name: "ธนาคาร (ศูนย์ลูกค้า)", Number: "02-123-4567"},
	{ID: "police", Name: "สายด่วนตำรวจ", Number: "191"},
	{ID: "manager", Name: "หัวหน้า (ในระบบ)", Number: "089-111-2233"},
}

// SampleVoice is the canned transcription used by the voice demo.
const SampleVoice = "เขาบอกว่าเร่งด่วนมาก ห้ามโทรกลับ และให้โอนเงินทันทีเพื่อยืนยันบัญชี"

// Demo start state.
const (
	demoElapsed = 48
	demoText    = "หัวหน้าเร่งด่วน ขอ OTP และบอกห้ามโทรกลับ"
)

// Case statuses.
const (
	StatusAssessing = "กำลังประเมิน"
	StatusStopped   = "หยุดธุรกรรมแล้ว"
)

// Evidence log messages.
const (
	msgReady         = "AI Guard พร้อมใช้งาน"
	msgStartCall     = "เริ่มสายคอล"
	msgIncoming      = "สายเรียกเข้า (เดโม)"
	msgAccept        = "รับสายจากหัวหน้า"
	msgDecline       = "ปฏิเสธสายเรียกเข้า"
	msgEndCall       = "วางสาย"
	msgMuteOn        = "ปิดไมค์ระหว่างสาย"
	msgMuteOff       = "เปิดไมค์ระหว่างสาย"
	msgSpeakerOn     = "เปิดลำโพง"
	msgSpeakerOff    = "ปิดลำโพง"
	msgVoiceDemo     = "สรุปเสียงถูกถอดเป็นข้อความ"
	msgStartChalPfx  = "เริ่ม Challenge: "
	msgStopChallenge = "หยุด Challenge"
	msgCopyPfx       = "คัดลอกสคริปต์: "
	msgStopReport    = "Stop & Report ถูกเปิดใช้งาน"
	msgExported      = "Export Evidence Pack สำเร็จ"
)
