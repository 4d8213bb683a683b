package cpu

import "fmt"

// Mnemonic identifies one of the 56 documented instructions.
type Mnemonic uint8

const (
	Illegal Mnemonic = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	Illegal: "???",

	ADC: "ADC",
	AND: "AND",
	ASL: "ASL",
	BCC: "BCC",
	BCS: "BCS",
	BEQ: "BEQ",
	BIT: "BIT",
	BMI: "BMI",
	BNE: "BNE",
	BPL: "BPL",
	BRK: "BRK",
	BVC: "BVC",
	BVS: "BVS",
	CLC: "CLC",
	CLD: "CLD",
	CLI: "CLI",
	CLV: "CLV",
	CMP: "CMP",
	CPX: "CPX",
	CPY: "CPY",
	DEC: "DEC",
	DEX: "DEX",
	DEY: "DEY",
	EOR: "EOR",
	INC: "INC",
	INX: "INX",
	INY: "INY",
	JMP: "JMP",
	JSR: "JSR",
	LDA: "LDA",
	LDX: "LDX",
	LDY: "LDY",
	LSR: "LSR",
	NOP: "NOP",
	ORA: "ORA",
	PHA: "PHA",
	PHP: "PHP",
	PLA: "PLA",
	PLP: "PLP",
	ROL: "ROL",
	ROR: "ROR",
	RTI: "RTI",
	RTS: "RTS",
	SBC: "SBC",
	SEC: "SEC",
	SED: "SED",
	SEI: "SEI",
	STA: "STA",
	STX: "STX",
	STY: "STY",
	TAX: "TAX",
	TAY: "TAY",
	TSX: "TSX",
	TXA: "TXA",
	TXS: "TXS",
	TYA: "TYA",
}

func (m Mnemonic) String() string {
	if m >= mnemonicCount {
		return "???"
	}
	return mnemonicNames[m]
}

func mnemonicFromString(s string) (Mnemonic, error) {
	for m := Illegal + 1; m < mnemonicCount; m++ {
		if mnemonicNames[m] == s {
			return m, nil
		}
	}
	return Illegal, fmt.Errorf("unknown mnemonic %s", s)
}

type opcodeFunc func(c *CPU, op operand)

// handlers is indexed by Mnemonic. Illegal has no handler, Step never
// gets that far.
var handlers [mnemonicCount]opcodeFunc

func init() {
	handlers = [mnemonicCount]opcodeFunc{
		ADC: (*CPU).adc,
		AND: (*CPU).and,
		ASL: (*CPU).asl,
		BCC: (*CPU).bcc,
		BCS: (*CPU).bcs,
		BEQ: (*CPU).beq,
		BIT: (*CPU).bit,
		BMI: (*CPU).bmi,
		BNE: (*CPU).bne,
		BPL: (*CPU).bpl,
		BRK: (*CPU).brk,
		BVC: (*CPU).bvc,
		BVS: (*CPU).bvs,
		CLC: (*CPU).clc,
		CLD: (*CPU).cld,
		CLI: (*CPU).cli,
		CLV: (*CPU).clv,
		CMP: (*CPU).cmp,
		CPX: (*CPU).cpx,
		CPY: (*CPU).cpy,
		DEC: (*CPU).dec,
		DEX: (*CPU).dex,
		DEY: (*CPU).dey,
		EOR: (*CPU).eor,
		INC: (*CPU).inc,
		INX: (*CPU).inx,
		INY: (*CPU).iny,
		JMP: (*CPU).jmp,
		JSR: (*CPU).jsr,
		LDA: (*CPU).lda,
		LDX: (*CPU).ldx,
		LDY: (*CPU).ldy,
		LSR: (*CPU).lsr,
		NOP: (*CPU).nop,
		ORA: (*CPU).ora,
		PHA: (*CPU).pha,
		PHP: (*CPU).php,
		PLA: (*CPU).pla,
		PLP: (*CPU).plp,
		ROL: (*CPU).rol,
		ROR: (*CPU).ror,
		RTI: (*CPU).rti,
		RTS: (*CPU).rts,
		SBC: (*CPU).sbc,
		SEC: (*CPU).sec,
		SED: (*CPU).sed,
		SEI: (*CPU).sei,
		STA: (*CPU).sta,
		STX: (*CPU).stx,
		STY: (*CPU).sty,
		TAX: (*CPU).tax,
		TAY: (*CPU).tay,
		TSX: (*CPU).tsx,
		TXA: (*CPU).txa,
		TXS: (*CPU).txs,
		TYA: (*CPU).tya,
	}
}
