package mnlg

import (
	"encoding/xml"
)

type tuneInformation struct {
	XMLName    xml.Name
	Programmer string `xml:"Programmer"`
	Comment    string `xml:"Comment"`
}

type element struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type tuneData struct {
	XMLName     xml.Name
	Information string `xml:"Information"`
	Binary      element
}

type contents struct {
	NumProgramData       int `xml:"NumProgramData,attr"`
	NumPresetInformation int `xml:"NumPresetInformation,attr"`
	NumTuneScaleData     int `xml:"NumTuneScaleData,attr"`
	NumTuneOctData       int `xml:"NumTuneOctData,attr"`
	TuneData             tuneData
}

type fileInformation struct {
	XMLName  xml.Name `xml:"KorgMSLibrarian_Data"`
	Product  string   `xml:"Product"`
	Contents contents `xml:"Contents"`
}

func tuningInfoXML(mode Mode, programmer, comment string) ([]byte, error) {
	rootName := "minilogue_TuneOctInformation"
	if mode == Scale {
		rootName = "minilogue_TuneScaleInformation"
	}
	return xml.Marshal(tuneInformation{
		XMLName:    xml.Name{Local: rootName},
		Programmer: programmer,
		Comment:    comment,
	})
}

func fileInfoXML(mode Mode, product string) ([]byte, error) {
	header := mode.fileNameHeader()
	dataName, binName := "TuneOctData", "TuneOctBinary"
	c := contents{NumTuneOctData: 1}
	if mode == Scale {
		dataName, binName = "TuneScaleData", "TuneScaleBinary"
		c = contents{NumTuneScaleData: 1}
	}

	c.TuneData = tuneData{
		XMLName:     xml.Name{Local: dataName},
		Information: header + "info",
		Binary:      element{XMLName: xml.Name{Local: binName}, Text: header + "bin"},
	}
	return xml.Marshal(fileInformation{Product: product, Contents: c})
}
