package signal

var builtin = []Signal{
	{
		ID:       Urgent,
		Label:    "เขาเร่งด่วนมาก",
		Weight:   2,
		Reason:   "เร่งด่วน",
		Keywords: []string{"ด่วน", "เร่ง", "ทันที", "urgent"},
	},
	{
		ID:       Transfer,
		Label:    "ขอโอนเงิน",
		Weight:   2,
		Reason:   "ขอโอนเงิน",
		Keywords: []string{"โอน", "โอนเงิน", "ชำระ", "จ่าย"},
	},
	{
		ID:       OTP,
		Label:    "ขอ OTP/รหัส",
		Weight:   3,
		Reason:   "ขอ OTP/รหัส",
		Keywords: []string{"otp", "รหัส", "โค้ด", "code", "ยืนยัน"},
	},
	{
		ID:       NoCallback,
		Label:    "ห้ามโทรกลับ/ห้ามวางสาย",
		Weight:   3,
		Reason:   "ห้ามโทรกลับ",
		Keywords: []string{"ห้ามโทรกลับ", "ห้ามวางสาย", "อย่าวางสาย", "ห้ามตัดสาย"},
	},
	{
		ID:       Impersonate,
		Label:    "อ้างว่าเป็นตำรวจ/ธนาคาร",
		Weight:   2,
		Reason:   "อ้างหน่วยงาน",
		Keywords: []string{"ตำรวจ", "ธนาคาร", "หน่วยงาน", "เจ้าหน้าที่", "สายด่วน"},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(builtin)
	if err != nil {
		panic("builtin signal catalog: " + err.Error())
	}
	return c
}
